package kodi

// JSON-RPC methods used by the chat commands
const (
	// GUI
	GUIShowNotification Method = "GUI.ShowNotification"
	GUIActivateWindow   Method = "GUI.ActivateWindow"

	// Player
	PlayerOpen      Method = "Player.Open"
	PlayerPlayPause Method = "Player.PlayPause"
	PlayerStop      Method = "Player.Stop"

	// Application
	ApplicationSetVolume Method = "Application.SetVolume"
	ApplicationSetMute   Method = "Application.SetMute"

	// Video library
	VideoLibraryScan  Method = "VideoLibrary.Scan"
	VideoLibraryClean Method = "VideoLibrary.Clean"

	// Input
	InputLeft   Method = "Input.Left"
	InputRight  Method = "Input.Right"
	InputUp     Method = "Input.Up"
	InputDown   Method = "Input.Down"
	InputBack   Method = "Input.Back"
	InputInfo   Method = "Input.Info"
	InputSelect Method = "Input.Select"

	// JSONRPC
	JSONRPCPing Method = "JSONRPC.Ping"
)

// VideoPlayerID is the player id Kodi assigns to the video player
const VideoPlayerID = 1

// JSONRPCVersion is sent with every request
const JSONRPCVersion = "2.0"

// YouTubePluginPrefix is the addon invocation that plays a YouTube video id
const YouTubePluginPrefix = "plugin://plugin.video.youtube/?action=play_video&videoid="

// videoPlayer returns the player context used by playback actions
func videoPlayer() Params {
	return Params{"playerid": VideoPlayerID}
}

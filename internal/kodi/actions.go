package kodi

import (
	"context"
	"maps"
	"sort"
)

// Action is a zero-argument command bound to a single JSON-RPC call
type Action struct {
	Name   string
	Method Method
	Params Params
	Help   string
}

// Run issues the action's call through inv
func (a Action) Run(ctx context.Context, inv Invoker) (map[string]any, error) {
	return inv.Invoke(ctx, a.Method, maps.Clone(a.Params))
}

// actionTable maps command words to their calls. It is never modified after
// package initialization.
var actionTable = map[string]Action{
	"ping":    {Method: JSONRPCPing, Help: "Returns pong if everything's working."},
	"home":    {Method: GUIActivateWindow, Params: Params{"window": "home"}, Help: "Navigate to the home screen."},
	"weather": {Method: GUIActivateWindow, Params: Params{"window": "weather"}, Help: "Navigate to the weather screen."},
	"scan":    {Method: VideoLibraryScan, Help: "Scan the video library."},
	"clean":   {Method: VideoLibraryClean, Help: "Clean the video library."},
	"mute":    {Method: ApplicationSetMute, Params: Params{"mute": true}, Help: "Mute the audio."},
	"unmute":  {Method: ApplicationSetMute, Params: Params{"mute": false}, Help: "Unmute the audio."},
	"pause":   {Method: PlayerPlayPause, Params: videoPlayer(), Help: "Pause/Unpause."},
	"play":    {Method: PlayerPlayPause, Params: videoPlayer(), Help: "Pause/Unpause."},
	"stop":    {Method: PlayerStop, Params: videoPlayer(), Help: "Stop the video."},
	"left":    {Method: InputLeft, Help: "Hit the left button."},
	"right":   {Method: InputRight, Help: "Hit the right button."},
	"up":      {Method: InputUp, Help: "Hit the up button."},
	"down":    {Method: InputDown, Help: "Hit the down button."},
	"back":    {Method: InputBack, Help: "Hit the back button."},
	"info":    {Method: InputInfo, Help: "View the info for the currently selected item."},
	"select":  {Method: InputSelect, Help: "Select the current item."},
}

func init() {
	for name, action := range actionTable {
		action.Name = name
		actionTable[name] = action
	}
}

// LookupAction returns the action bound to a command word
func LookupAction(word string) (Action, bool) {
	action, ok := actionTable[word]
	if !ok {
		return Action{}, false
	}
	action.Params = maps.Clone(action.Params)
	return action, true
}

// ActionNames returns every command word in sorted order
func ActionNames() []string {
	names := make([]string, 0, len(actionTable))
	for name := range actionTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Actions returns every action sorted by command word
func Actions() []Action {
	actions := make([]Action, 0, len(actionTable))
	for _, name := range ActionNames() {
		action, _ := LookupAction(name)
		actions = append(actions, action)
	}
	return actions
}

package kodi

import "net/http"

// FnModeOptions controls how a Client talks to the media center
type FnModeOptions struct {
	// Debug logs every request and response at debug level
	Debug bool
	// Test replaces the network with an in-memory recorder that answers "OK"
	Test bool
	// HTTPClient overrides the transport; nil means a fresh default client
	HTTPClient *http.Client
}

type FnModeOption func(*FnModeOptions)

func WithDebug(debug bool) FnModeOption {
	return func(opts *FnModeOptions) {
		opts.Debug = debug
	}
}

func WithTest(test bool) FnModeOption {
	return func(opts *FnModeOptions) {
		opts.Test = test
	}
}

func WithHTTPClient(client *http.Client) FnModeOption {
	return func(opts *FnModeOptions) {
		opts.HTTPClient = client
	}
}

func NewModeOptions(options ...FnModeOption) *FnModeOptions {
	opts := &FnModeOptions{}
	for _, option := range options {
		option(opts)
	}
	return opts
}

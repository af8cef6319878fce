package config

import "os"

// Environment variables consulted by EnvOverrides
const (
	EnvHost     = "KODI_HOST"
	EnvLogin    = "KODI_LOGIN"
	EnvPassword = "KODI_PASSWORD"
)

// EnvOverrides collects configuration overrides from KODI_* environment
// variables. Unset variables are left out so they do not mask file values.
func EnvOverrides() map[string]string {
	overrides := map[string]string{}
	for key, env := range map[string]string{
		KeyHost:     EnvHost,
		KeyLogin:    EnvLogin,
		KeyPassword: EnvPassword,
	} {
		if v, ok := os.LookupEnv(env); ok {
			overrides[key] = v
		}
	}
	return overrides
}

// Overlay returns a new mapping with each layer applied in order; later
// layers win.
func Overlay(layers ...map[string]string) map[string]string {
	out := map[string]string{}
	for _, layer := range layers {
		for k, v := range layer {
			out[k] = v
		}
	}
	return out
}

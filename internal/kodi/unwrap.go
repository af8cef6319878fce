package kodi

// Unwrap extracts the payload of a JSON-RPC success envelope.
//
// A mapping with a "result" key yields that value. A mapping without one
// yields nil, so envelopes carrying only an "error" reach the chat as an
// empty reply. Anything that is not a mapping, such as a reply string built
// by a handler, is returned unchanged.
func Unwrap(value any) any {
	switch v := value.(type) {
	case map[string]any:
		if result, ok := v["result"]; ok {
			return result
		}
		return nil
	case Params:
		return Unwrap(map[string]any(v))
	default:
		return value
	}
}

// withResult applies Unwrap to a handler's return value
func withResult(value any, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return Unwrap(value), nil
}

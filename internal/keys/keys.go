package keys

// Store key layout for a tracked method id:
//
//	<id>          - call counter (INCR)
//	<id>:inputs   - textual inputs, one RPUSH per call
//	<id>:outputs  - textual outputs, one RPUSH per call

const (
	inputsSuffix  = ":inputs"
	outputsSuffix = ":outputs"
)

// Counter returns the key holding the call counter of method.
func Counter(method string) string { return method }

func Inputs(method string) string { return method + inputsSuffix }

func Outputs(method string) string { return method + outputsSuffix }

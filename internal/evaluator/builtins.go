package evaluator

import (
	"time"

	"github.com/nightjar-lang/nightjar/internal/config"
	"github.com/nightjar-lang/nightjar/internal/diagnostics"
)

// registerBuiltins installs the native functions available in every
// global scope. Per spec §6, `clock` is the only one: it returns the
// number of milliseconds since the Unix epoch as a Number, matching
// original_source/src/functions_native.rs's NativeClock::call, for
// benchmarking scripts from within the language itself.
func registerBuiltins(globals *Environment) {
	globals.Define(config.ClockFuncName, &Native{
		Name:  config.ClockFuncName,
		Arity: 0,
		Fn: func(args []Object) (Object, *diagnostics.Error) {
			return Number(float64(time.Now().UnixMilli())), nil
		},
	})
}

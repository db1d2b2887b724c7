package js

import (
	"strings"

	"github.com/dop251/goja"
)

// registerConsole installs console.log, console.warn and console.error,
// writing to the engine's logger.
func registerConsole(h *hostContext) {
	logger := h.logger.Named("console")
	console := h.vm.NewObject()
	console.Set("log", func(call goja.FunctionCall) goja.Value {
		logger.Info(formatArgs(call.Arguments))
		return goja.Undefined()
	})
	console.Set("warn", func(call goja.FunctionCall) goja.Value {
		logger.Warn(formatArgs(call.Arguments))
		return goja.Undefined()
	})
	console.Set("error", func(call goja.FunctionCall) goja.Value {
		logger.Error(formatArgs(call.Arguments))
		return goja.Undefined()
	})
	h.vm.Set("console", console)
}

func formatArgs(args []goja.Value) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.String()
	}
	return strings.Join(parts, " ")
}

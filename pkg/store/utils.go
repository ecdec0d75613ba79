package store

import (
	"bytes"
	"fmt"
	"runtime"
)

func recoverValueString(value interface{}) (msg string) {
	switch v := value.(type) {
	case error:
		msg = v.Error()
	case string:
		msg = v
	default:
		msg = fmt.Sprintf("%#v", v)
	}

	return
}

func stackTrace(depth int) string {
	pc := make([]uintptr, depth)

	// Skip runtime.Callers and stackTrace
	nbFrames := runtime.Callers(2, pc)
	pc = pc[:nbFrames]

	var buf bytes.Buffer

	frames := runtime.CallersFrames(pc)
	for {
		frame, more := frames.Next()

		fmt.Fprintf(&buf, "%s\n", frame.Function)
		fmt.Fprintf(&buf, "  %s:%d\n", frame.File, frame.Line)

		if !more {
			break
		}
	}

	return buf.String()
}

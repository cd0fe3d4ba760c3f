package config

import "runtime"

func defaultWindowAPI() WindowAPI {
	switch runtime.GOOS {
	case "windows":
		return WindowAPIWin32
	case "darwin":
		return WindowAPICocoa
	default:
		return WindowAPIX11
	}
}

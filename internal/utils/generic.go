package utils

func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func WithDefault(val, def string) string {
	if val != "" {
		return val
	}
	return def
}

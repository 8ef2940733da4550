package attachment

// FileInput mirrors a file input control: setting the value it already
// holds produces no change event.
type FileInput struct {
	value string
}

// Set stores value and reports whether a change event fires.
func (in *FileInput) Set(value string) bool {
	if value == in.value {
		return false
	}
	in.value = value
	return true
}

func (in *FileInput) Reset() {
	in.value = ""
}

func (in *FileInput) Value() string {
	return in.value
}

package models

// Alert is a blocking notice that must be dismissed before input resumes
type Alert struct {
	Message string
}

// AppModel represents the UI state - only local UI concerns
type AppModel struct {
	ActiveTool  int    // Index into the tool bindings
	Status      string // Status bar text
	InFlight    int    // Requests still awaiting a response across all tools
	Width       int    // Terminal width
	Height      int    // Terminal height
	Alert       *Alert // Current blocking alert, if any
	PickingFile bool   // Whether the file picker overlay is open
}

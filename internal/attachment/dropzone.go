package attachment

type DragKind int

const (
	DragEnter DragKind = iota
	DragOver
	DragLeave
	Drop
)

func (k DragKind) String() string {
	switch k {
	case DragEnter:
		return "dragenter"
	case DragOver:
		return "dragover"
	case DragLeave:
		return "dragleave"
	default:
		return "drop"
	}
}

type DragEvent struct {
	Kind  DragKind
	Files []File
}

// DropZone is the drag-and-drop channel into a Stager.
type DropZone struct {
	stager *Stager
	active bool
}

func NewDropZone(stager *Stager) *DropZone {
	return &DropZone{stager: stager}
}

// Handle processes one drag event. Every drag event is consumed so the
// default handling (inserting the dropped text) never runs.
func (z *DropZone) Handle(ev DragEvent) bool {
	switch ev.Kind {
	case DragEnter, DragOver:
		z.active = true
	case DragLeave:
		z.active = false
	case Drop:
		z.active = false
		if len(ev.Files) > 0 {
			z.stager.Stage(ev.Files[0])
		}
	}
	return true
}

// Active reports whether a drag is currently over the zone
func (z *DropZone) Active() bool {
	return z.active
}

package dispatcher

import (
	"github.com/Rorical/RoriRoast/internal/attachment"
	"github.com/Rorical/RoriRoast/internal/client"
	"github.com/Rorical/RoriRoast/internal/language"
	"github.com/Rorical/RoriRoast/internal/models"
)

// withImage accepts an empty text when an image is staged and sends the
// staged image along. The stager is only read, never cleared.
type withImage struct {
	stager *attachment.Stager
}

func (p withImage) validate(text string) (string, bool) {
	if _, staged := p.stager.Pending(); text == "" && !staged {
		return models.EmptyTextOrImageMessage, false
	}
	return "", true
}

func (p withImage) attach(req *client.Request) {
	req.Encoding = models.EncodingMultipart
	if f, ok := p.stager.Pending(); ok {
		req.Image = &f
	}
}

// NewRoast creates the image-capable dispatcher.
func NewRoast(binding models.ToolBinding, languages *language.Selector, bus Submitter, stager *attachment.Stager, opts ...Option) *Dispatcher {
	return newDispatcher(binding, languages, bus, withImage{stager: stager}, opts)
}

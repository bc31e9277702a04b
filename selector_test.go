package wavecx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wavecx/wavecx-go"
	"github.com/wavecx/wavecx-go/pkg/targetedcontent"
)

func TestSelect(t *testing.T) {
	t.Parallel()

	popup := &targetedcontent.Content{TriggerPoint: "home", PresentationType: targetedcontent.PresentationPopup, ViewURL: "https://cdn.example/popup"}
	button := &targetedcontent.Content{TriggerPoint: "home", PresentationType: targetedcontent.PresentationButtonTriggered, ViewURL: "https://cdn.example/button"}

	tests := []struct {
		name      string
		sel       wavecx.Selection
		want      *targetedcontent.Content
		available bool
	}{
		{name: "nothing", sel: wavecx.Selection{}},
		{name: "popup only", sel: wavecx.Selection{ActivePopup: popup}, want: popup},
		{name: "user triggered not opened", sel: wavecx.Selection{ActiveUserTriggered: button}, available: true},
		{name: "user triggered opened", sel: wavecx.Selection{ActiveUserTriggered: button, UserTriggeredShown: true}, want: button, available: true},
		{name: "popup wins over opened user triggered", sel: wavecx.Selection{ActivePopup: popup, ActiveUserTriggered: button, UserTriggeredShown: true}, want: popup, available: true},
		{name: "shown flag without content", sel: wavecx.Selection{UserTriggeredShown: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := wavecx.Select(tt.sel)
			if tt.want == nil {
				assert.False(t, ok)
				assert.Equal(t, targetedcontent.Content{}, got)
			} else {
				assert.True(t, ok)
				assert.Equal(t, *tt.want, got)
			}
			assert.Equal(t, tt.available, tt.sel.HasUserTriggeredContent())
		})
	}
}

package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThemesDefineEveryColor(t *testing.T) {
	for name, th := range map[string]Theme{"dark": DarkTheme, "light": LightTheme} {
		for field, c := range map[string]string{
			"Primary":   string(th.Primary),
			"TextMuted": string(th.TextMuted),
			"Success":   string(th.Success),
			"Warning":   string(th.Warning),
			"Error":     string(th.Error),
			"Info":      string(th.Info),
			"Border":    string(th.Border),
		} {
			assert.NotEmpty(t, c, "%s theme %s", name, field)
		}
	}
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, CurrentTheme.Success, StatusColor("Offer"))
	assert.Equal(t, CurrentTheme.Info, StatusColor("Interviewing"))
	assert.Equal(t, CurrentTheme.Error, StatusColor("Rejected"))
	assert.Equal(t, CurrentTheme.Warning, StatusColor("Applied"))
}

package critcss

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSignalsNormalization(t *testing.T) {
	s := NewSignals(
		[]string{"DIV", " h1 ", ""},
		[]string{".hero", "btn", "  "},
		[]string{"#main", "footer", ""},
	)

	assert.True(t, s.HasTag("div"))
	assert.True(t, s.HasTag("H1"))
	assert.False(t, s.HasTag(""))
	assert.True(t, s.HasClass("hero"))
	assert.True(t, s.HasClass("btn"))
	assert.False(t, s.HasClass(".hero"))
	assert.True(t, s.HasID("main"))
	assert.True(t, s.HasID("footer"))
	assert.False(t, s.Empty())
}

func TestSignalsFingerprint(t *testing.T) {
	a := NewSignals([]string{"div", "nav"}, []string{"hero"}, []string{"main"})
	b := NewSignals([]string{"nav", "div"}, []string{".hero"}, []string{"#main"})

	// Order and prefixes do not affect identity.
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Equal(t, "t:div,nav;c:hero;i:main", a.Fingerprint())

	c := NewSignals([]string{"div"}, []string{"hero"}, []string{"main"})
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())

	empty := NewSignals(nil, nil, nil)
	assert.Equal(t, "t:;c:;i:", empty.Fingerprint())
}

func TestParseSnapshot(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
		check   func(t *testing.T, s Signals)
	}{
		{
			name: "full snapshot",
			data: `{"tags":["div","h1"],"classes":["hero"],"ids":["main"]}`,
			check: func(t *testing.T, s Signals) {
				assert.True(t, s.HasTag("div"))
				assert.True(t, s.HasClass("hero"))
				assert.True(t, s.HasID("main"))
			},
		},
		{
			name: "missing fields default to empty",
			data: `{"classes":["hero"]}`,
			check: func(t *testing.T, s Signals) {
				assert.True(t, s.HasClass("hero"))
				assert.False(t, s.HasTag("div"))
			},
		},
		{
			name: "empty object",
			data: `{}`,
			check: func(t *testing.T, s Signals) {
				assert.True(t, s.Empty())
			},
		},
		{
			name:    "malformed json",
			data:    `{"tags":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseSnapshot([]byte(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, s)
		})
	}
}

func TestLoadSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tags":["nav"],"classes":[],"ids":[]}`), 0644))

	s, err := LoadSnapshot(path)
	require.NoError(t, err)
	assert.True(t, s.HasTag("nav"))

	_, err = LoadSnapshot(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

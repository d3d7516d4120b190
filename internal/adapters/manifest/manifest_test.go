package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tasks/internal/adapters/manifest"
	"go.trai.ch/tasks/internal/core/domain"
)

func TestOutputFolder(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{
			name: "local folder present",
			content: `
input:
  easy-installer:
    local: images/base.tar
output:
  easy-installer:
    local: torizon-docker-custom
    name: Custom image
`,
			want: "torizon-docker-custom",
		},
		{
			name:    "missing output block",
			content: "input: {}\n",
			wantErr: true,
		},
		{
			name:    "missing local key",
			content: "output:\n  easy-installer:\n    name: x\n",
			wantErr: true,
		},
		{
			name:    "invalid yaml",
			content: "output: [\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), domain.ManifestFileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			got, err := manifest.NewReader().OutputFolder(path)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrMalformedManifest)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutputFolder_MissingFile(t *testing.T) {
	_, err := manifest.NewReader().OutputFolder(filepath.Join(t.TempDir(), domain.ManifestFileName))
	require.ErrorIs(t, err, domain.ErrMalformedManifest)
}

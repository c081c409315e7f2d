package envstruct_test

import (
	"testing"

	"github.com/myrjola/trackside/internal/envstruct"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Addr      string `env:"TRACKSIDE_ADDR" envDefault:"localhost:4000"`
	APIURL    string `env:"TRACKSIDE_API_URL" envDefault:"http://localhost:4000/api"`
	SQLiteURL string `env:"TRACKSIDE_SQLITE_URL"`
}

func TestPopulate(t *testing.T) {
	tests := []struct {
		name      string
		v         any
		lookupEnv func(string) (string, bool)
		want      any
		wantErr   error
	}{
		{
			name:      "nil",
			v:         nil,
			lookupEnv: func(_ string) (string, bool) { return "", false },
			want:      nil,
			wantErr:   envstruct.ErrInvalidValue,
		},
		{
			name:      "not pointer",
			v:         struct{}{},
			lookupEnv: func(_ string) (string, bool) { return "", false },
			want:      nil,
			wantErr:   envstruct.ErrInvalidValue,
		},
		{
			name:      "missing env without default",
			v:         &testConfig{},
			lookupEnv: func(_ string) (string, bool) { return "", false },
			want:      nil,
			wantErr:   envstruct.ErrEnvNotSet,
		},
		{
			name: "defaults apply when env is absent",
			v:    &testConfig{},
			lookupEnv: func(key string) (string, bool) {
				if key == "TRACKSIDE_SQLITE_URL" {
					return ":memory:", true
				}
				return "", false
			},
			want: &testConfig{
				Addr:      "localhost:4000",
				APIURL:    "http://localhost:4000/api",
				SQLiteURL: ":memory:",
			},
			wantErr: nil,
		},
		{
			name: "env overrides default",
			v:    &testConfig{},
			lookupEnv: func(key string) (string, bool) {
				switch key {
				case "TRACKSIDE_ADDR":
					return "localhost:0", true
				case "TRACKSIDE_SQLITE_URL":
					return "./test.sqlite", true
				default:
					return "", false
				}
			},
			want: &testConfig{
				Addr:      "localhost:0",
				APIURL:    "http://localhost:4000/api",
				SQLiteURL: "./test.sqlite",
			},
			wantErr: nil,
		},
		{
			name: "unsupported field type",
			v: &struct {
				Port int `env:"TRACKSIDE_PORT"`
			}{},
			lookupEnv: func(_ string) (string, bool) { return "4000", true },
			want:      nil,
			wantErr:   envstruct.ErrInvalidValue,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := envstruct.Populate(tt.v, tt.lookupEnv)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, tt.v)
		})
	}
}

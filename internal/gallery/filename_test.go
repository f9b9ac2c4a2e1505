package gallery

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllowedExtension(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantExt string
		wantOK  bool
	}{
		{"png", "cat.png", "png", true},
		{"uppercase", "CAT.JPG", "jpg", true},
		{"jpeg", "holiday.photo.jpeg", "jpeg", true},
		{"gif", "anim.gif", "gif", true},
		{"text", "x.txt", "txt", false},
		{"no dot", "png", "", false},
		{"trailing dot", "cat.", "", false},
		{"double extension", "cat.png.exe", "exe", false},
		{"hidden file", ".png", "png", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ext, ok := AllowedExtension(tc.input)
			require.Equal(t, tc.wantOK, ok)
			require.Equal(t, tc.wantExt, ext)
		})
	}
}

func TestMatchesExtension(t *testing.T) {
	require.True(t, MatchesExtension("png", "image/png"))
	require.True(t, MatchesExtension("jpg", "image/jpeg"))
	require.True(t, MatchesExtension("jpeg", "image/jpeg"))
	require.True(t, MatchesExtension("gif", "image/gif"))

	require.False(t, MatchesExtension("png", "image/gif"))
	require.False(t, MatchesExtension("jpg", "image/png"))
	require.False(t, MatchesExtension("png", "image/webp"))
	require.False(t, MatchesExtension("txt", "text/plain; charset=utf-8"))
}

func TestSanitizeFilename(t *testing.T) {
	testCases := []struct {
		input string
		want  string
	}{
		{"cat.png", "cat.png"},
		{"My cool movie.mov", "My_cool_movie.mov"},
		{"../../../etc/passwd", "etc_passwd"},
		{`..\..\windows\photo.jpg`, "windows_photo.jpg"},
		{"i contain cool ümläuts.txt", "i_contain_cool_umlauts.txt"},
		{"  spaced   out .gif", "spaced_out_.gif"},
		{"猫.png", "png"},
		{"猫猫", ""},
		{"...", ""},
		{"we$ird#name!.jpeg", "weirdname.jpeg"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			require.Equal(t, tc.want, SanitizeFilename(tc.input))
		})
	}
}

func TestStoredName(t *testing.T) {
	a := StoredName("png")
	b := StoredName("png")

	require.NotEqual(t, a, b)
	require.True(t, strings.HasSuffix(a, ".png"))
	require.Len(t, a, 36+len(".png"))
	require.Equal(t, a, SanitizeFilename(a))
}

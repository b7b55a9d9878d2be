package util

import "testing"

func TestSecondsToTimeString(t *testing.T) {
	inputs := []float64{
		-3,
		5.4,
		57.6,
		3360,
		3725,
	}
	outputs := []string{
		"0:00",
		"0:05",
		"0:58",
		"56:00",
		"1:02:05",
	}
	for i, input := range inputs {
		if s := SecondsToTimeString(input); s != outputs[i] {
			t.Errorf("got %s, want %s", s, outputs[i])
		}
	}
}

func TestMediaDisplayName(t *testing.T) {
	for _, tc := range []struct{ in, want string }{
		{"/home/me/Movies/clip.mkv", "clip.mkv"},
		{"file:///home/me/Music/song.flac", "song.flac"},
		{"https://example.com/live/stream.m3u8?t=1", "stream.m3u8"},
		{`C:\Users\me\Videos\trip.mp4`, "trip.mp4"},
		{"plain.ogg", "plain.ogg"},
	} {
		if got := MediaDisplayName(tc.in); got != tc.want {
			t.Errorf("MediaDisplayName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

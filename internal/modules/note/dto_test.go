package note

import "testing"

func TestNotePayloadValidate(t *testing.T) {
	cases := []struct {
		name    string
		payload NotePayload
		wantErr bool
	}{
		{"valid", NotePayload{Title: "ok", Content: "ten chars!"}, false},
		{"title too short", NotePayload{Title: "x", Content: "long enough content"}, true},
		{"title missing", NotePayload{Content: "long enough content"}, true},
		{"content too short", NotePayload{Title: "Title", Content: "short"}, true},
		{"content missing", NotePayload{Title: "Title"}, true},
		{"multibyte runes counted", NotePayload{Title: "メモ", Content: "十文字ちょうどの内容だ"}, false},
	}
	for _, tc := range cases {
		err := tc.payload.Validate()
		if tc.wantErr && err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
	}
}

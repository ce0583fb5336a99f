package game

// Narrator resolves the playable audio asset for a clue. The actual speech
// synthesis is an external collaborator; the engine only needs a URL to
// broadcast alongside the correlation id.
type Narrator interface {
	ClueAudioURL(audioID string) string
}

// StaticNarrator points clients at pre-rendered narration files served from
// a static prefix.
type StaticNarrator struct {
	BaseURL string
}

func (n StaticNarrator) ClueAudioURL(audioID string) string {
	return n.BaseURL + "/audio/" + audioID + ".wav"
}

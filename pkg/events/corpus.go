package events

import "time"

const (
	TopicCorpus = "corpus.reindex"

	CorpusReindexRequested = "CORPUS_REINDEX_REQUESTED"
)

// Reindex trigger origins
const (
	ReasonStartup = "startup"
	ReasonWatcher = "watcher"
	ReasonAdmin   = "admin"
	ReasonShell   = "shell"
)

// NewReindexRequested asks the reindex consumer to rebuild the corpus index.
// paths lists the files that changed, when known.
func NewReindexRequested(reason string, paths []string) BaseEvent {
	data := map[string]interface{}{"reason": reason}
	if len(paths) > 0 {
		data["paths"] = paths
	}
	return BaseEvent{Type: CorpusReindexRequested, Data: data, OccurredAt: time.Now().UTC()}
}

// Reason reads the trigger origin back from a decoded event
func Reason(e Event) string {
	if r, ok := e.Payload()["reason"].(string); ok {
		return r
	}
	return ""
}

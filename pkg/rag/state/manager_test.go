package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/pkg/rag/intent"
	"ai-tutor-be/pkg/store"
)

func TestNext_IsTotal(t *testing.T) {
	pendings := []string{store.PendingNone, store.PendingWebSearchConsent}
	outcomes := []Outcome{OutcomeAnswered, OutcomeMiss, OutcomeFailed}

	for _, p := range pendings {
		for _, k := range intent.Kinds() {
			for _, o := range outcomes {
				got := Next(p, k, o)
				assert.Contains(t, pendings, got, "%s + %s + %s", p, k, o)
			}
		}
	}
}

func TestNext(t *testing.T) {
	tests := []struct {
		name    string
		pending string
		kind    intent.Kind
		outcome Outcome
		want    string
	}{
		{"hit stays idle", store.PendingNone, intent.KindRetrieval, OutcomeAnswered, store.PendingNone},
		{"miss opens offer", store.PendingNone, intent.KindRetrieval, OutcomeMiss, store.PendingWebSearchConsent},
		{"yes closes offer", store.PendingWebSearchConsent, intent.KindConfirmation, OutcomeAnswered, store.PendingNone},
		{"failed yes keeps offer", store.PendingWebSearchConsent, intent.KindConfirmation, OutcomeFailed, store.PendingWebSearchConsent},
		{"email keeps offer", store.PendingWebSearchConsent, intent.KindEmailCommand, OutcomeAnswered, store.PendingWebSearchConsent},
		{"email keeps idle", store.PendingNone, intent.KindEmailCommand, OutcomeAnswered, store.PendingNone},
		{"calc changes topic", store.PendingWebSearchConsent, intent.KindCalc, OutcomeAnswered, store.PendingNone},
		{"smalltalk changes topic", store.PendingWebSearchConsent, intent.KindSmalltalk, OutcomeAnswered, store.PendingNone},
		{"weather failure keeps offer", store.PendingWebSearchConsent, intent.KindWeather, OutcomeFailed, store.PendingWebSearchConsent},
		{"second miss keeps offer", store.PendingWebSearchConsent, intent.KindRetrieval, OutcomeMiss, store.PendingWebSearchConsent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Next(tt.pending, tt.kind, tt.outcome))
		})
	}
}

func TestManager_Apply(t *testing.T) {
	m := NewManager(logger.NewNopLogger())
	s := store.NewSession("s1")

	m.Apply(&s, intent.KindRetrieval, OutcomeMiss, "qui a inventé TCP ?")
	assert.True(t, s.AwaitingConsent())
	assert.Equal(t, "qui a inventé TCP ?", s.LastEscalationQuery)

	m.Apply(&s, intent.KindRetrieval, OutcomeMiss, "et UDP ?")
	assert.Equal(t, "et UDP ?", s.LastEscalationQuery)

	m.Apply(&s, intent.KindWeather, OutcomeFailed, "")
	assert.True(t, s.AwaitingConsent())
	assert.Equal(t, "et UDP ?", s.LastEscalationQuery)

	m.Apply(&s, intent.KindConfirmation, OutcomeAnswered, "")
	assert.False(t, s.AwaitingConsent())
	assert.Empty(t, s.LastEscalationQuery)
}

func TestManager_RecordAnswer(t *testing.T) {
	m := NewManager(logger.NewNopLogger())
	s := store.NewSession("s1")

	m.RecordAnswer(&s, "14", "calc", nil)
	assert.Equal(t, "14", s.LastAnswer)
	assert.Equal(t, "calc", s.LastMode)
}

package command

import (
	"testing"

	"sales-crm-be/internal/entity"
	"sales-crm-be/internal/pkg/serverutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoveStage(t *testing.T) {
	cmd, err := Parse([]byte(`{"action":"move_stage","company":"Acme","stage":"Closed Won"}`))
	require.NoError(t, err)

	move, ok := cmd.(MoveStage)
	require.True(t, ok, "expected MoveStage, got %T", cmd)
	assert.Equal(t, "Acme", move.Company)
	assert.Equal(t, entity.StageClosedWon, move.Stage, "stage is normalized at the boundary")
	assert.Nil(t, move.AccountId)
}

func TestParseMoveStageById(t *testing.T) {
	cmd, err := Parse([]byte(`{"action":"move_stage","account_id":"7e6f4a9c-93b2-4f1d-8c35-2f8f6f8f0001","stage":"discovery"}`))
	require.NoError(t, err)

	move := cmd.(MoveStage)
	require.NotNil(t, move.AccountId)
	assert.Equal(t, "7e6f4a9c-93b2-4f1d-8c35-2f8f6f8f0001", move.AccountId.String())
}

func TestParseRecordCall(t *testing.T) {
	body := `{
		"action": "record_call",
		"account_id": "7e6f4a9c-93b2-4f1d-8c35-2f8f6f8f0001",
		"date": "2026-08-20T15:00:00Z",
		"duration": 1200,
		"transcript": "pricing discussion",
		"outcome": "send revised quote",
		"analysis": {"overall_sentiment": 6, "likelihood_to_close": 55, "next_steps": ["revise quote"]}
	}`
	cmd, err := Parse([]byte(body))
	require.NoError(t, err)

	rec, ok := cmd.(RecordCall)
	require.True(t, ok, "expected RecordCall, got %T", cmd)
	assert.Equal(t, 1200, rec.Duration)
	require.NotNil(t, rec.Analysis)
	assert.Equal(t, 6, *rec.Analysis.OverallSentiment)
	assert.Equal(t, 55, *rec.Analysis.LikelihoodToClose)
	assert.Nil(t, rec.Sentiment)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown action", body: `{"action":"delete_everything"}`},
		{name: "missing action", body: `{"company":"Acme"}`},
		{name: "not json", body: `move_stage Acme`},
		{name: "move_stage without target", body: `{"action":"move_stage","stage":"lead"}`},
		{name: "move_stage invalid stage", body: `{"action":"move_stage","company":"Acme","stage":"qualified"}`},
		{name: "move_stage bad uuid", body: `{"action":"move_stage","account_id":"not-a-uuid","stage":"lead"}`},
		{name: "add_note missing text", body: `{"action":"add_note","company":"Acme"}`},
		{name: "flag_risk missing reason", body: `{"action":"flag_risk","company":"Acme"}`},
		{name: "update_likelihood out of range", body: `{"action":"update_likelihood","company":"Acme","likelihood":140}`},
		{name: "record_call bad account id", body: `{"action":"record_call","account_id":"nope","date":"2026-08-20T15:00:00Z"}`},
		{name: "create_account missing contact", body: `{"action":"create_account","company":"Acme"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := Parse([]byte(tt.body))
			require.Error(t, err)
			assert.Nil(t, cmd)

			var verr *serverutils.ValidationError
			assert.ErrorAs(t, err, &verr, "parse failures must surface as validation errors")
		})
	}
}

func TestParseCreateAccountDefaultsPlan(t *testing.T) {
	cmd, err := Parse([]byte(`{"action":"create_account","company":"Orbit","contact_name":"Dana"}`))
	require.NoError(t, err)

	create := cmd.(CreateAccount)
	assert.Equal(t, entity.PlanFree, create.Plan)
	assert.Equal(t, "Dana", create.Contact.Name)
}

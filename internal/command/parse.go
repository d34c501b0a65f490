package command

import (
	"encoding/json"

	"sales-crm-be/internal/dto"
	"sales-crm-be/internal/entity"
	"sales-crm-be/internal/pkg/serverutils"

	"github.com/google/uuid"
)

// Parse decodes the raw action body into a typed command. All string-keyed
// dispatch happens here at the boundary; unknown actions and malformed
// parameters become validation errors before any service code runs.
func Parse(body []byte) (Command, error) {
	var envelope dto.ActionEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, serverutils.NewValidationError("malformed action body: %v", err)
	}
	if err := serverutils.ValidateRequest(envelope); err != nil {
		return nil, err
	}

	switch envelope.Action {
	case "move_stage":
		return parseMoveStage(body)
	case "add_note":
		return parseAddNote(body)
	case "get_account_brief":
		return parseAccountBrief(body)
	case "update_likelihood":
		return parseUpdateLikelihood(body)
	case "flag_risk":
		return parseFlagRisk(body)
	case "record_call":
		return parseRecordCall(body)
	case "create_account":
		return parseCreateAccount(body)
	default:
		return nil, serverutils.NewValidationError("unknown action %q", envelope.Action)
	}
}

func decode[T any](body []byte) (*T, error) {
	var req T
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, serverutils.NewValidationError("malformed action body: %v", err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}
	return &req, nil
}

func parseMoveStage(body []byte) (Command, error) {
	req, err := decode[dto.MoveStageRequest](body)
	if err != nil {
		return nil, err
	}
	if req.AccountId == "" && req.Company == "" {
		return nil, serverutils.NewValidationError("move_stage requires account_id or company")
	}

	stage, err := entity.NormalizeStage(req.Stage)
	if err != nil {
		return nil, serverutils.NewValidationError("%v", err)
	}

	cmd := MoveStage{Company: req.Company, Stage: stage}
	if req.AccountId != "" {
		id, err := uuid.Parse(req.AccountId)
		if err != nil {
			return nil, serverutils.NewValidationError("invalid account_id %q", req.AccountId)
		}
		cmd.AccountId = &id
	}
	return cmd, nil
}

func parseAddNote(body []byte) (Command, error) {
	req, err := decode[dto.AddNoteRequest](body)
	if err != nil {
		return nil, err
	}
	return AddNote{Company: req.Company, Text: req.Text}, nil
}

func parseAccountBrief(body []byte) (Command, error) {
	req, err := decode[dto.AccountBriefRequest](body)
	if err != nil {
		return nil, err
	}
	return GetAccountBrief{Company: req.Company}, nil
}

func parseUpdateLikelihood(body []byte) (Command, error) {
	req, err := decode[dto.UpdateLikelihoodRequest](body)
	if err != nil {
		return nil, err
	}
	return UpdateLikelihood{Company: req.Company, Likelihood: req.Likelihood}, nil
}

func parseFlagRisk(body []byte) (Command, error) {
	req, err := decode[dto.FlagRiskRequest](body)
	if err != nil {
		return nil, err
	}
	return FlagRisk{Company: req.Company, Reason: req.Reason}, nil
}

func parseRecordCall(body []byte) (Command, error) {
	req, err := decode[dto.RecordCallRequest](body)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(req.AccountId)
	if err != nil {
		return nil, serverutils.NewValidationError("invalid account_id %q", req.AccountId)
	}

	cmd := RecordCall{
		AccountId:  id,
		Date:       req.Date,
		Duration:   req.Duration,
		Transcript: req.Transcript,
		Outcome:    req.Outcome,
	}
	if req.Sentiment != nil {
		cmd.Sentiment = &entity.CallSentiment{
			Score:        req.Sentiment.Score,
			Satisfaction: req.Sentiment.Satisfaction,
			Summary:      req.Sentiment.Summary,
			Tags:         req.Sentiment.Tags,
		}
	}
	if req.Analysis != nil {
		cmd.Analysis = &entity.CallAnalysis{
			OverallSentiment:  req.Analysis.OverallSentiment,
			LikelihoodToClose: req.Analysis.LikelihoodToClose,
			PainPoints:        req.Analysis.PainPoints,
			NextSteps:         req.Analysis.NextSteps,
			Summary:           req.Analysis.Summary,
		}
	}
	return cmd, nil
}

func parseCreateAccount(body []byte) (Command, error) {
	req, err := decode[dto.CreateAccountRequest](body)
	if err != nil {
		return nil, err
	}
	plan := entity.Plan(req.Plan)
	if req.Plan == "" {
		plan = entity.PlanFree
	}
	return CreateAccount{
		Company: req.Company,
		Contact: entity.Contact{
			Name:  req.ContactName,
			Role:  req.ContactRole,
			Email: req.ContactEmail,
		},
		Plan:      plan,
		DealValue: req.DealValue,
		Industry:  req.Industry,
	}, nil
}

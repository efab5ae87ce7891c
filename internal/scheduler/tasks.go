package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskRescoreLead = "leads.rescore"

const TaskRescoreAll = "leads.rescore_all"

type RescoreLeadPayload struct {
	LeadID string `json:"leadId"`
}

func NewRescoreLeadTask(payload RescoreLeadPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRescoreLead, data), nil
}

func ParseRescoreLeadPayload(task *asynq.Task) (RescoreLeadPayload, error) {
	var payload RescoreLeadPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return RescoreLeadPayload{}, err
	}
	return payload, nil
}

// NewRescoreAllTask builds the payload-less full rescore task.
func NewRescoreAllTask() *asynq.Task {
	return asynq.NewTask(TaskRescoreAll, nil)
}

package scheduler

import "github.com/hibiken/asynq"

// TaskLeadsRebalance triggers one rebalancing sweep over unassigned leads.
const TaskLeadsRebalance = "leads.rebalance"

// NewLeadsRebalanceTask builds the sweep task. It carries no payload; the
// sweep derives everything from the current database state.
func NewLeadsRebalanceTask() *asynq.Task {
	return asynq.NewTask(TaskLeadsRebalance, nil)
}

// Package queue defines message payloads exchanged over the message broker.
package queue

// SlipAcceptedEvent is published after a payment slip passes verification
// and its idempotency record is written.  Downstream consumers reconcile
// payments or notify operators without re-reading Redis.
type SlipAcceptedEvent struct {
	TransRef      string  `json:"trans_ref"`
	Amount        float64 `json:"amount"`
	TransferredAt string  `json:"transferred_at"`
	SenderBank    string  `json:"sender_bank"`
	SenderAccount string  `json:"sender_account"`
	UserID        string  `json:"user_id"`
	AcceptedAt    string  `json:"accepted_at"`
}

// QueueStoppedEvent is published when a customer opts out of further
// ticket pulls and their queue row's stop flag has been set.
type QueueStoppedEvent struct {
	Concert   string `json:"concert"`
	QueueNo   string `json:"queue_no"`
	Round     string `json:"round"`
	UserID    string `json:"user_id"`
	StoppedAt string `json:"stopped_at"`
}

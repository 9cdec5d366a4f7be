// Package outbox provides the Message entity of the transactional outbox.
//
// Domain events are persisted as outbox messages inside the transaction that
// produced them and relayed to the message broker asynchronously, giving
// at-least-once delivery without distributed transactions.
package outbox

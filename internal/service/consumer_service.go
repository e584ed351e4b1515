package service

import (
	"context"
	"encoding/json"

	"ai-coursekb-be/internal/dto"
	"ai-coursekb-be/internal/pkg/logger"
	"ai-coursekb-be/internal/repository/unitofwork"
	"ai-coursekb-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService embeds session chunks off the request path. A chunk sync
// publishes the session id; this worker fills in every chunk that still
// lacks an embedding.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	logger            logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		logger:            log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedSessionMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "Failed to unmarshal embed message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed payloads never become valid, do not retry
		return
	}

	cs.logger.Info("consumer", "Embedding session chunks", map[string]interface{}{
		"session_id": payload.SessionId,
	})

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chunks, err := uow.ChunkRepository().Window(ctx, payload.SessionId, 0)
	if err != nil {
		cs.logger.Error("consumer", "Failed to load session chunks", map[string]interface{}{
			"session_id": payload.SessionId,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	pending := chunks[:0]
	for _, c := range chunks {
		if len(c.Embedding) == 0 {
			pending = append(pending, c)
		}
	}
	if len(pending) == 0 {
		msg.Ack()
		return
	}

	for _, c := range pending {
		res, err := cs.embeddingProvider.Generate(c.Text, "RETRIEVAL_DOCUMENT")
		if err != nil {
			cs.logger.Error("consumer", "Embedding generation failed", map[string]interface{}{
				"session_id": payload.SessionId,
				"chunk_id":   c.Id,
				"error":      err.Error(),
			})
			msg.Nack() // provider outages are retriable
			return
		}
		c.Embedding = res.Embedding.Values
	}

	if err := uow.Begin(ctx); err != nil {
		cs.logger.Error("consumer", "Failed to begin transaction", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Nack()
		return
	}
	defer uow.Rollback()

	for _, c := range pending {
		if err := uow.ChunkRepository().Update(ctx, c); err != nil {
			cs.logger.Error("consumer", "Failed to store embedding", map[string]interface{}{
				"chunk_id": c.Id,
				"error":    err.Error(),
			})
			msg.Nack()
			return
		}
	}

	if err := uow.Commit(); err != nil {
		cs.logger.Error("consumer", "Failed to commit embeddings", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Nack()
		return
	}

	cs.logger.Info("consumer", "Session chunks embedded", map[string]interface{}{
		"session_id": payload.SessionId,
		"chunks":     len(pending),
	})
	msg.Ack()
}

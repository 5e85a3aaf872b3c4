package infra_question_cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-redis/redis"
	"github.com/humanbelnik/quizroom/core/internal/model"
)

// Source is the question bank being cached.
type Source interface {
	RandomQuestion(ctx context.Context, category string) (model.Question, error)
	IsAnswerCorrect(ctx context.Context, questionID, answerID int) (bool, error)
	Answers(ctx context.Context, questionID int) ([]model.Answer, error)
	Categories(ctx context.Context) ([]string, error)
	CountQuestions(ctx context.Context, category string) (int, error)
}

// Driver caches the catalog reads of Source in redis.
// Per-question reads go straight through. Redis failures degrade to a cache miss.
type Driver struct {
	Source
	client *redis.Client
	key    string
	ttl    time.Duration
	logger *slog.Logger
}

func New(
	source Source,
	client *redis.Client,
	key string,
	ttl time.Duration,
) *Driver {
	return &Driver{
		Source: source,
		client: client,
		key:    key,
		ttl:    ttl,
		logger: slog.Default(),
	}
}

func (d *Driver) Categories(ctx context.Context) ([]string, error) {
	fullKey := d.getFullKey("categories")

	if raw, ok := d.get(fullKey); ok {
		var categories []string
		if err := json.Unmarshal([]byte(raw), &categories); err == nil {
			return categories, nil
		}
	}

	categories, err := d.Source.Categories(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(categories); err == nil {
		d.set(fullKey, string(raw))
	}
	return categories, nil
}

func (d *Driver) CountQuestions(ctx context.Context, category string) (int, error) {
	fullKey := d.getFullKey("count:" + category)

	if raw, ok := d.get(fullKey); ok {
		if count, err := strconv.Atoi(raw); err == nil {
			return count, nil
		}
	}

	count, err := d.Source.CountQuestions(ctx, category)
	if err != nil {
		return 0, err
	}

	d.set(fullKey, strconv.Itoa(count))
	return count, nil
}

func (d *Driver) get(key string) (string, bool) {
	val, err := d.client.Get(key).Result()
	if err != nil {
		if err != redis.Nil {
			d.logger.Warn("cache read failed", "key", key, "error", err)
		}
		return "", false
	}
	return val, true
}

func (d *Driver) set(key, value string) {
	if err := d.client.Set(key, value, d.ttl).Err(); err != nil {
		d.logger.Warn("cache write failed", "key", key, "error", err)
	}
}

func (d *Driver) getFullKey(key string) string {
	if d.key != "" {
		return d.key + ":" + key
	}
	return key
}

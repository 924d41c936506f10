package board

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client provides facility-scoped Redis operations for the ops board.
// All keys and channels are automatically namespaced with the facility name.
// The client is thread-safe and can be used concurrently from multiple goroutines.
type Client struct {
	rdb      *redis.Client
	facility string
}

// NewClient creates a new board client for the specified facility.
// The client automatically namespaces all keys and channels with the
// facility name.
//
// Returns an error if facility is empty.
func NewClient(redisOpts *redis.Options, facility string) (*Client, error) {
	if facility == "" {
		return nil, fmt.Errorf("facility name cannot be empty")
	}

	return &Client{
		rdb:      redis.NewClient(redisOpts),
		facility: facility,
	}, nil
}

// Facility returns the facility name this client is scoped to.
func (c *Client) Facility() string {
	return c.facility
}

// Close closes the Redis connection. Implements io.Closer.
// After calling Close(), the client should not be used.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping verifies Redis connectivity. Useful for health checks.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// PutEmployee writes an employee record, creating or fully replacing it.
// The record identity is the normalised name key, so "Jane Doe" and
// " jane doe " address the same record.
func (c *Client) PutEmployee(ctx context.Context, e *Employee) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("invalid employee: %w", err)
	}

	hash, err := EmployeeToHash(e)
	if err != nil {
		return fmt.Errorf("failed to serialize employee: %w", err)
	}

	key := EmployeeKey(c.facility, NameKey(e.Name))
	if err := c.rdb.HSet(ctx, key, hash).Err(); err != nil {
		return fmt.Errorf("failed to write employee to Redis: %w", err)
	}

	return nil
}

// GetEmployee retrieves an employee by name (case-insensitive, trimmed).
// Returns (nil, redis.Nil) if the employee doesn't exist.
// Use IsNotFound() to check for not-found errors.
func (c *Client) GetEmployee(ctx context.Context, name string) (*Employee, error) {
	key := EmployeeKey(c.facility, NameKey(name))

	hashData, err := c.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read employee from Redis: %w", err)
	}

	// HGetAll returns an empty map for non-existent keys
	if len(hashData) == 0 {
		return nil, redis.Nil
	}

	employee, err := HashToEmployee(hashData)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize employee: %w", err)
	}

	return employee, nil
}

// ListEmployees retrieves every employee record in the facility, sorted
// by name key. Uses Redis SCAN to iterate without blocking the server.
// Malformed records are skipped.
func (c *Client) ListEmployees(ctx context.Context) ([]*Employee, error) {
	pattern := EmployeeScanPattern(c.facility)
	iter := c.rdb.Scan(ctx, 0, pattern, 0).Iterator()

	var employees []*Employee
	for iter.Next(ctx) {
		hashData, err := c.rdb.HGetAll(ctx, iter.Val()).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to read employee from Redis: %w", err)
		}
		if len(hashData) == 0 {
			continue
		}

		employee, err := HashToEmployee(hashData)
		if err != nil {
			continue
		}
		employees = append(employees, employee)
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan employees: %w", err)
	}

	sort.Slice(employees, func(i, j int) bool {
		return NameKey(employees[i].Name) < NameKey(employees[j].Name)
	})

	return employees, nil
}

// DeleteEmployee removes an employee record. Deleting a missing record is
// not an error.
func (c *Client) DeleteEmployee(ctx context.Context, name string) error {
	key := EmployeeKey(c.facility, NameKey(name))
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete employee from Redis: %w", err)
	}
	return nil
}

// AddStation adds a workstation to the facility's station set.
// Adding an existing station is a no-op.
func (c *Client) AddStation(ctx context.Context, station string) error {
	if station == "" {
		return fmt.Errorf("station name cannot be empty")
	}

	key := StationsKey(c.facility)
	if err := c.rdb.SAdd(ctx, key, station).Err(); err != nil {
		return fmt.Errorf("failed to add station: %w", err)
	}
	return nil
}

// RemoveStation removes a workstation from the facility's station set.
// Removing a missing station is a no-op.
func (c *Client) RemoveStation(ctx context.Context, station string) error {
	key := StationsKey(c.facility)
	if err := c.rdb.SRem(ctx, key, station).Err(); err != nil {
		return fmt.Errorf("failed to remove station: %w", err)
	}
	return nil
}

// Stations returns all workstations registered for the facility, sorted.
func (c *Client) Stations(ctx context.Context) ([]string, error) {
	key := StationsKey(c.facility)
	stations, err := c.rdb.SMembers(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read stations: %w", err)
	}

	sort.Strings(stations)
	return stations, nil
}

// PutCommit writes a committed barcode record, indexes it by commit time,
// and publishes a commit event. Writing the same barcode twice replaces the
// record and re-scores the index entry.
func (c *Client) PutCommit(ctx context.Context, rec *CommitRecord) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("invalid commit record: %w", err)
	}

	key := CommitKey(c.facility, rec.IsoBarcode)
	if err := c.rdb.HSet(ctx, key, CommitToHash(rec)).Err(); err != nil {
		return fmt.Errorf("failed to write commit to Redis: %w", err)
	}

	z := redis.Z{
		Score:  float64(rec.CommittedAtMs),
		Member: rec.IsoBarcode,
	}
	if err := c.rdb.ZAdd(ctx, CommitIndexKey(c.facility), z).Err(); err != nil {
		return fmt.Errorf("failed to index commit: %w", err)
	}

	recJSON, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal commit for event: %w", err)
	}
	if err := c.rdb.Publish(ctx, CommitEventsChannel(c.facility), recJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish commit event: %w", err)
	}

	return nil
}

// GetCommit retrieves a commit record by barcode id.
// Returns (nil, redis.Nil) if no record exists for the barcode.
func (c *Client) GetCommit(ctx context.Context, barcodeID string) (*CommitRecord, error) {
	key := CommitKey(c.facility, barcodeID)

	hashData, err := c.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read commit from Redis: %w", err)
	}

	if len(hashData) == 0 {
		return nil, redis.Nil
	}

	rec, err := HashToCommit(hashData)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize commit: %w", err)
	}

	return rec, nil
}

// LatestIssuedBarcode returns the barcode id of the most recently committed
// record across all employees' live tasks. This is the continuation source
// for barcode numbering.
// Returns ("", redis.Nil) when no barcode has ever been committed.
func (c *Client) LatestIssuedBarcode(ctx context.Context) (string, error) {
	results, err := c.rdb.ZRevRangeWithScores(ctx, CommitIndexKey(c.facility), 0, 0).Result()
	if err != nil {
		return "", fmt.Errorf("failed to read commit index: %w", err)
	}

	if len(results) == 0 {
		return "", redis.Nil
	}

	return results[0].Member.(string), nil
}

// ListCommits returns all commit records in ascending commit-time order.
func (c *Client) ListCommits(ctx context.Context) ([]*CommitRecord, error) {
	ids, err := c.rdb.ZRange(ctx, CommitIndexKey(c.facility), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read commit index: %w", err)
	}

	commits := make([]*CommitRecord, 0, len(ids))
	for _, id := range ids {
		rec, err := c.GetCommit(ctx, id)
		if err != nil {
			if IsNotFound(err) {
				// Index entry without a record; skip it
				continue
			}
			return nil, err
		}
		commits = append(commits, rec)
	}

	return commits, nil
}

// AppendTrackingEvent appends an event to a code's tracking history and
// publishes it on the tracking events channel. History order is the event
// timestamp, so late-arriving scans still sort chronologically.
func (c *Client) AppendTrackingEvent(ctx context.Context, kind TrackingKind, code string, ev TrackingEvent) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	if code == "" {
		return fmt.Errorf("tracking code cannot be empty")
	}
	if err := ev.Validate(); err != nil {
		return fmt.Errorf("invalid tracking event: %w", err)
	}

	z := redis.Z{
		Score:  float64(ev.At.UnixMilli()),
		Member: ev.String(),
	}
	if err := c.rdb.ZAdd(ctx, TrackingKey(c.facility, kind, code), z).Err(); err != nil {
		return fmt.Errorf("failed to append tracking event: %w", err)
	}

	item := TrackingFeedItem{Kind: kind, Code: code, Event: ev}
	itemJSON, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal tracking event: %w", err)
	}
	if err := c.rdb.Publish(ctx, TrackingEventsChannel(c.facility), itemJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish tracking event: %w", err)
	}

	return nil
}

// TrackingHistory returns a code's events in chronological order.
// Wire lines that no longer parse are skipped rather than failing the
// whole history.
func (c *Client) TrackingHistory(ctx context.Context, kind TrackingKind, code string) ([]TrackingEvent, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}

	lines, err := c.rdb.ZRange(ctx, TrackingKey(c.facility, kind, code), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read tracking history: %w", err)
	}

	events := make([]TrackingEvent, 0, len(lines))
	for _, line := range lines {
		ev, err := ParseTrackingEvent(line)
		if err != nil {
			continue
		}
		events = append(events, ev)
	}

	return events, nil
}

// CreateSession writes a login session with the given time-to-live.
// Expired sessions vanish from Redis, so GetSession returning not-found
// covers both "never existed" and "lapsed".
func (c *Client) CreateSession(ctx context.Context, s *Session, ttl time.Duration) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid session: %w", err)
	}
	if ttl <= 0 {
		return fmt.Errorf("session ttl must be positive")
	}

	key := SessionKey(c.facility, s.Token)
	if err := c.rdb.HSet(ctx, key, SessionToHash(s)).Err(); err != nil {
		return fmt.Errorf("failed to write session to Redis: %w", err)
	}
	if err := c.rdb.Expire(ctx, key, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set session ttl: %w", err)
	}

	return nil
}

// GetSession retrieves a session by token.
// Returns (nil, redis.Nil) if the session doesn't exist or has expired.
func (c *Client) GetSession(ctx context.Context, token string) (*Session, error) {
	key := SessionKey(c.facility, token)

	hashData, err := c.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read session from Redis: %w", err)
	}

	if len(hashData) == 0 {
		return nil, redis.Nil
	}

	s, err := HashToSession(hashData)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize session: %w", err)
	}

	return s, nil
}

// DeleteSession removes a session. Deleting a missing session is not an error.
func (c *Client) DeleteSession(ctx context.Context, token string) error {
	if err := c.rdb.Del(ctx, SessionKey(c.facility, token)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// TrackingSubscription represents an active Pub/Sub subscription to tracking
// events. Caller must call Close() when done to clean up resources.
type TrackingSubscription struct {
	events <-chan *TrackingFeedItem
	errors <-chan error
	cancel func()
	once   sync.Once
}

// Events returns the channel of tracking feed items.
// The channel is closed when the subscription is closed or the context is
// cancelled.
func (s *TrackingSubscription) Events() <-chan *TrackingFeedItem {
	return s.events
}

// Errors returns the channel of subscription errors.
// Errors include JSON unmarshaling failures and other non-fatal issues.
// The subscription continues after errors - messages are skipped.
func (s *TrackingSubscription) Errors() <-chan error {
	return s.errors
}

// Close stops the subscription and cleans up resources. Implements io.Closer.
// Safe to call multiple times - subsequent calls are no-ops.
func (s *TrackingSubscription) Close() error {
	s.once.Do(s.cancel)
	return nil
}

// SubscribeTrackingEvents subscribes to tracking events for this facility.
// Returns a TrackingSubscription that delivers full feed items.
// Caller must call subscription.Close() when done; context cancellation
// also stops the subscription.
//
// Events are delivered on a buffered channel (size 10) to prevent blocking.
// If the subscriber is too slow, events may be dropped by Redis Pub/Sub
// (at-most-once delivery).
func (c *Client) SubscribeTrackingEvents(ctx context.Context) (*TrackingSubscription, error) {
	pubsub := c.rdb.Subscribe(ctx, TrackingEventsChannel(c.facility))

	eventsChan := make(chan *TrackingFeedItem, 10)
	errorsChan := make(chan error, 10)

	subCtx, cancelFunc := context.WithCancel(ctx)

	go func() {
		defer close(eventsChan)
		defer close(errorsChan)
		defer pubsub.Close()

		ch := pubsub.Channel()

		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var item TrackingFeedItem
				if err := json.Unmarshal([]byte(msg.Payload), &item); err != nil {
					select {
					case errorsChan <- fmt.Errorf("failed to unmarshal tracking event: %w", err):
					case <-subCtx.Done():
						return
					}
					continue
				}

				select {
				case eventsChan <- &item:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return &TrackingSubscription{
		events: eventsChan,
		errors: errorsChan,
		cancel: cancelFunc,
	}, nil
}

// IsNotFound returns true if the error is a Redis "key not found" error
// (redis.Nil). Use this to check if GetEmployee, GetCommit, GetSession, or
// LatestIssuedBarcode returned "not found".
func IsNotFound(err error) bool {
	return errors.Is(err, redis.Nil)
}

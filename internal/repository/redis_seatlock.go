package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/silverscreenhq/silverscreen-api/internal/domain"
)

// RedisSeatLocker stores seat holds as Redis keys with a millisecond TTL.
// The TTL is the hold's expiry countdown: releasing or consuming the hold
// deletes the key, which also disarms the countdown, and a re-acquired hold
// is a brand new key with its own TTL, so a stale expiry can never evict a
// later holder. Acquire and release are Lua scripts, making the existence
// check and the write a single atomic step on the Redis side.
type RedisSeatLocker struct {
	client redis.UniversalClient
}

func NewRedisSeatLocker(client redis.UniversalClient) *RedisSeatLocker {
	return &RedisSeatLocker{
		client: client,
	}
}

var acquireSeatLockScript = redis.NewScript(`
	-- KEYS = [lock key, showtime lock-set key]
	-- ARGV = [userID, ttl millis, set member]

	if redis.call("EXISTS", KEYS[1]) == 1 then
		return 0
	end

	redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[2])
	redis.call("SADD", KEYS[2], ARGV[3])

	return 1
`)

var releaseSeatLockScript = redis.NewScript(`
	-- KEYS = [lock key, showtime lock-set key]
	-- ARGV = [userID, set member]

	if redis.call("GET", KEYS[1]) ~= ARGV[1] then
		return 0
	end

	redis.call("DEL", KEYS[1])
	redis.call("SREM", KEYS[2], ARGV[2])

	return 1
`)

// Script to drop lock-set members whose lock keys have already expired and
// return the members that are still held.
var filterHeldSeatsScript = redis.NewScript(`
	local setKey = KEYS[1]
	local showtimeId = ARGV[1]
	local cursor = "0"
	local batchSize = 100
	local expired = {}
	local held = {}

	repeat
		local result = redis.call("SSCAN", setKey, cursor, "COUNT", batchSize)
		cursor = result[1]

		for _, member in ipairs(result[2]) do
			local lockKey = "seat_lock:" .. showtimeId .. ":" .. member
			if redis.call("EXISTS", lockKey) == 0 then
				table.insert(expired, member)
			else
				table.insert(held, member)
			end
		end
	until cursor == "0"

	if #expired > 0 then
		redis.call("SREM", setKey, unpack(expired))
	end

	return held
`)

func (r *RedisSeatLocker) Lock(
	ctx context.Context,
	showtimeID int,
	userID string,
	seat domain.Seat,
	ttl time.Duration) (bool, error) {

	keys := []string{seatLockKey(showtimeID, seat), seatLockSetKey(showtimeID)}

	acquired, err := acquireSeatLockScript.Run(
		ctx,
		r.client,
		keys,
		userID,
		ttl.Milliseconds(),
		seatMember(seat),
	).Int()
	if err != nil {
		return false, fmt.Errorf("failed to run seat lock script: %w", err)
	}

	return acquired == 1, nil
}

func (r *RedisSeatLocker) Unlock(
	ctx context.Context,
	showtimeID int,
	userID string,
	seat domain.Seat) (bool, error) {

	keys := []string{seatLockKey(showtimeID, seat), seatLockSetKey(showtimeID)}

	released, err := releaseSeatLockScript.Run(ctx, r.client, keys, userID, seatMember(seat)).Int()
	if err != nil {
		return false, fmt.Errorf("failed to run seat unlock script: %w", err)
	}

	return released == 1, nil
}

func (r *RedisSeatLocker) Holder(ctx context.Context, showtimeID int, seat domain.Seat) (string, error) {
	holder, err := r.client.Get(ctx, seatLockKey(showtimeID, seat)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}

	return holder, nil
}

func (r *RedisSeatLocker) LockedSeats(ctx context.Context, showtimeID int) ([]domain.Seat, error) {
	members, err := filterHeldSeatsScript.Run(
		ctx,
		r.client,
		[]string{seatLockSetKey(showtimeID)},
		showtimeID,
	).StringSlice()
	if err != nil {
		return nil, fmt.Errorf("failed to run held seats script: %w", err)
	}

	seats := make([]domain.Seat, 0, len(members))

	for _, member := range members {
		seat, err := parseSeatMember(member)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	return seats, nil
}

func seatLockKey(showtimeID int, seat domain.Seat) string {
	return fmt.Sprintf("seat_lock:%d:%d:%d", showtimeID, seat.Row, seat.Col)
}

func seatLockSetKey(showtimeID int) string {
	return fmt.Sprintf("seat_locks:%d", showtimeID)
}

func seatMember(seat domain.Seat) string {
	return fmt.Sprintf("%d:%d", seat.Row, seat.Col)
}

func parseSeatMember(member string) (domain.Seat, error) {
	rowStr, colStr, ok := strings.Cut(member, ":")
	if !ok {
		return domain.Seat{}, fmt.Errorf("malformed seat lock member %q", member)
	}

	row, err := strconv.Atoi(rowStr)
	if err != nil {
		return domain.Seat{}, fmt.Errorf("malformed seat lock member %q", member)
	}

	col, err := strconv.Atoi(colStr)
	if err != nil {
		return domain.Seat{}, fmt.Errorf("malformed seat lock member %q", member)
	}

	return domain.Seat{Row: row, Col: col}, nil
}

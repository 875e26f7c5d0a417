package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/loulwahalabdely/FC723-Project1/internal/domain/booking"
	"github.com/loulwahalabdely/FC723-Project1/internal/domain/seat"
)

// キー構成
//
//	{prefix}seat:{座席}   予約本体（ハッシュ）
//	{prefix}ref:{予約番号} 座席コード
//	{prefix}seats         予約済み座席コードの集合
const (
	fieldReference  = "reference"
	fieldFirstName  = "first_name"
	fieldLastName   = "last_name"
	fieldPassportID = "passport_id"
	fieldMeal       = "meal"
	fieldCreatedAt  = "created_at"
	fieldUpdatedAt  = "updated_at"
)

// 戻り値: 0 成功 / 1 座席重複 / 2 予約番号重複
var insertScript = redis.NewScript(`
	if redis.call("EXISTS", KEYS[1]) == 1 then
		return 1
	end
	if redis.call("EXISTS", KEYS[2]) == 1 then
		return 2
	end
	redis.call("HSET", KEYS[1], unpack(ARGV, 2))
	redis.call("SET", KEYS[2], ARGV[1])
	redis.call("SADD", KEYS[3], ARGV[1])
	return 0
`)

// 戻り値: 0 成功 / 1 予約なし
var updateMealScript = redis.NewScript(`
	if redis.call("EXISTS", KEYS[1]) == 0 then
		return 1
	end
	redis.call("HSET", KEYS[1], "meal", ARGV[1], "updated_at", ARGV[2])
	return 0
`)

// 戻り値: 0 成功 / 1 予約なし / 2 姓の不一致
var deleteScript = redis.NewScript(`
	local lastName = redis.call("HGET", KEYS[1], "last_name")
	if not lastName then
		return 1
	end
	if lastName ~= ARGV[1] then
		return 2
	end
	local ref = redis.call("HGET", KEYS[1], "reference")
	redis.call("DEL", KEYS[1])
	if ref then
		redis.call("DEL", ARGV[3] .. ref)
	end
	redis.call("SREM", KEYS[2], ARGV[2])
	return 0
`)

// BookingRepository は予約ストアのRedis実装
// 更新系は Lua スクリプトで1操作ずつアトミックに実行する
type BookingRepository struct {
	client *redis.Client
	prefix string
}

// NewBookingRepository は BookingRepository を作成する（prefix はキーの名前空間）
func NewBookingRepository(client *redis.Client, prefix string) *BookingRepository {
	return &BookingRepository{client: client, prefix: prefix}
}

func (r *BookingRepository) seatKey(code string) string { return r.prefix + "seat:" + code }
func (r *BookingRepository) refPrefix() string { return r.prefix + "ref:" }
func (r *BookingRepository) indexKey() string { return r.prefix + "seats" }

func (r *BookingRepository) Exists(ctx context.Context, id seat.ID) (bool, error) {
	n, err := r.client.Exists(ctx, r.seatKey(id.String())).Result()
	if err != nil {
		return false, booking.NewStorageError("予約の存在確認", err)
	}
	return n == 1, nil
}

func (r *BookingRepository) Get(ctx context.Context, id seat.ID) (*booking.Booking, error) {
	fields, err := r.client.HGetAll(ctx, r.seatKey(id.String())).Result()
	if err != nil {
		return nil, booking.NewStorageError("予約取得", err)
	}
	if len(fields) == 0 {
		return nil, booking.ErrNotFound
	}
	return toEntity(id, fields)
}

func (r *BookingRepository) ExistsReference(ctx context.Context, reference string) (bool, error) {
	n, err := r.client.Exists(ctx, r.refPrefix()+reference).Result()
	if err != nil {
		return false, booking.NewStorageError("予約番号の存在確認", err)
	}
	return n == 1, nil
}

func (r *BookingRepository) Insert(ctx context.Context, b *booking.Booking) error {
	code := b.Seat.String()
	keys := []string{r.seatKey(code), r.refPrefix() + b.Reference, r.indexKey()}
	args := []interface{}{
		code,
		fieldReference, b.Reference,
		fieldFirstName, b.FirstName,
		fieldLastName, b.LastName,
		fieldPassportID, b.PassportID,
		fieldMeal, string(b.Meal),
		fieldCreatedAt, b.CreatedAt.UTC().Format(time.RFC3339Nano),
		fieldUpdatedAt, b.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	result, err := insertScript.Run(ctx, r.client, keys, args...).Int()
	if err != nil {
		return booking.NewStorageError("予約作成", err)
	}
	switch result {
	case 1:
		return booking.ErrDuplicateSeat
	case 2:
		return booking.ErrDuplicateReference
	}
	return nil
}

func (r *BookingRepository) UpdateMeal(ctx context.Context, id seat.ID, meal booking.Meal) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	result, err := updateMealScript.Run(ctx, r.client, []string{r.seatKey(id.String())}, string(meal), now).Int()
	if err != nil {
		return booking.NewStorageError("機内食更新", err)
	}
	if result == 1 {
		return booking.ErrNotFound
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id seat.ID, lastName string) error {
	code := id.String()
	keys := []string{r.seatKey(code), r.indexKey()}
	result, err := deleteScript.Run(ctx, r.client, keys, booking.NormalizeName(lastName), code, r.refPrefix()).Int()
	if err != nil {
		return booking.NewStorageError("予約削除", err)
	}
	switch result {
	case 1:
		return booking.ErrNotFound
	case 2:
		return booking.ErrNoMatch
	}
	return nil
}

func (r *BookingRepository) List(ctx context.Context) ([]*booking.Booking, error) {
	codes, err := r.client.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, booking.NewStorageError("予約一覧取得", err)
	}
	if len(codes) == 0 {
		return []*booking.Booking{}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(codes))
	for i, code := range codes {
		cmds[i] = pipe.HGetAll(ctx, r.seatKey(code))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, booking.NewStorageError("予約一覧取得", err)
	}

	result := make([]*booking.Booking, 0, len(codes))
	for i, code := range codes {
		fields := cmds[i].Val()
		if len(fields) == 0 {
			continue
		}
		id, err := seat.Parse(code)
		if err != nil {
			return nil, fmt.Errorf("不正な座席コード %q: %w", code, err)
		}
		b, err := toEntity(id, fields)
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Seat.Less(result[j].Seat) })
	return result, nil
}

func (r *BookingRepository) ListByLastName(ctx context.Context, lastName string) ([]*booking.Booking, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*booking.Booking, 0)
	for _, b := range all {
		if b.MatchesLastName(lastName) {
			result = append(result, b)
		}
	}
	return result, nil
}

func (r *BookingRepository) Ping(ctx context.Context) error {
	if err := Ping(ctx, r.client); err != nil {
		return booking.NewStorageError("疎通確認", err)
	}
	return nil
}

func toEntity(id seat.ID, fields map[string]string) (*booking.Booking, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, fields[fieldCreatedAt])
	if err != nil {
		return nil, fmt.Errorf("作成日時の変換に失敗: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, fields[fieldUpdatedAt])
	if err != nil {
		return nil, fmt.Errorf("更新日時の変換に失敗: %w", err)
	}
	return &booking.Booking{
		Reference:  fields[fieldReference],
		Seat:       id,
		FirstName:  fields[fieldFirstName],
		LastName:   fields[fieldLastName],
		PassportID: fields[fieldPassportID],
		Meal:       booking.Meal(fields[fieldMeal]),
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}, nil
}

var _ booking.Repository = (*BookingRepository)(nil)

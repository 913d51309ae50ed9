package cache

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
)

func TestRedisCache_Get_Hit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, time.Hour, "test:")

	rec := record(5)
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	mock.ExpectGet("test:5").SetVal(string(data))

	got, ok := c.Get(5)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.ForwardedMessageID != 5 || got.SourceLanguage != "es" {
		t.Errorf("got wrong record: %+v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedisCache_Get_Miss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, time.Hour, "test:")

	mock.ExpectGet("test:5").RedisNil()

	if _, ok := c.Get(5); ok {
		t.Error("expected cache miss")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedisCache_Get_CorruptPayload(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, time.Hour, "test:")

	mock.ExpectGet("test:5").SetVal("not json")

	if _, ok := c.Get(5); ok {
		t.Error("corrupt payload should be treated as a miss")
	}
}

func TestRedisCache_Put(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, time.Hour, "test:")

	rec := record(5)
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	mock.ExpectSet("test:5", data, time.Hour).SetVal("OK")

	c.Put(5, rec)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedisCache_Remove(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, time.Hour, "test:")

	mock.ExpectDel("test:5").SetVal(1)

	c.Remove(5)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedisCache_DefaultPrefix(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, time.Hour, "")

	mock.ExpectGet("lingobridge:relay:9").RedisNil()

	c.Get(9)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedisCache_SweepIsNoOp(t *testing.T) {
	db, _ := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, time.Hour, "test:")

	if n := c.Sweep(); n != 0 {
		t.Errorf("Sweep = %d, want 0", n)
	}
}

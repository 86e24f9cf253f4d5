package fines

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"circulation/core/storage"
	"circulation/feature/ledger"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/minio/minio-go/v7"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Receipt is the archived proof of a fine payment.
type Receipt struct {
	FineID          uint      `json:"fine_id"`
	UserID          uint      `json:"user_id"`
	BorrowRecordID  uint      `json:"borrow_record_id"`
	DaysOverdue     int       `json:"days_overdue"`
	AmountCents     int64     `json:"amount_cents"`
	PaidAmountCents int64     `json:"paid_amount_cents"`
	PaidAt          time.Time `json:"paid_at"`
}

// NewReceipt builds a receipt from a paid fine.
func NewReceipt(f ledger.Fine) Receipt {
	r := Receipt{
		FineID:         f.ID,
		UserID:         f.UserID,
		BorrowRecordID: f.BorrowRecordID,
		DaysOverdue:    f.DaysOverdue,
		AmountCents:    f.AmountCents,
	}
	if f.PaidAmountCents != nil {
		r.PaidAmountCents = *f.PaidAmountCents
	}
	if f.PaidAt != nil {
		r.PaidAt = *f.PaidAt
	}
	return r
}

// ReceiptObject describes one archived receipt.
type ReceiptObject struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// Archive stores and retrieves payment receipts.
type Archive interface {
	Store(ctx context.Context, r Receipt) (string, error)
	List(ctx context.Context, userID uint) ([]ReceiptObject, error)
	Fetch(ctx context.Context, userID, fineID uint) (*Receipt, error)
}

// BucketArchive keeps receipts as JSON objects under receipts/<user>/.
type BucketArchive struct {
	client storage.Client
	bucket string
}

// NewBucketArchive creates an archive on an object storage bucket.
func NewBucketArchive(client storage.Client, bucket string) *BucketArchive {
	return &BucketArchive{client: client, bucket: bucket}
}

func userPrefix(userID uint) string {
	return fmt.Sprintf("receipts/%d/", userID)
}

func finePrefix(userID, fineID uint) string {
	return fmt.Sprintf("%s%d-", userPrefix(userID), fineID)
}

// Store writes a receipt and returns its object key.
func (a *BucketArchive) Store(ctx context.Context, r Receipt) (string, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encode receipt: %w", err)
	}

	key := finePrefix(r.UserID, r.FineID) + uuid.NewString() + ".json"
	_, err = a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("put receipt %s: %w", key, err)
	}
	return key, nil
}

// List returns the user's receipts ordered by key.
func (a *BucketArchive) List(ctx context.Context, userID uint) ([]ReceiptObject, error) {
	out := []ReceiptObject{}
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: userPrefix(userID), Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list receipts: %w", obj.Err)
		}
		out = append(out, ReceiptObject{Key: obj.Key, Size: obj.Size, LastModified: obj.LastModified})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Fetch reads the receipt of one fine.
func (a *BucketArchive) Fetch(ctx context.Context, userID, fineID uint) (*Receipt, error) {
	prefix := finePrefix(userID, fineID)

	var key string
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list receipts: %w", obj.Err)
		}
		if strings.HasPrefix(obj.Key, prefix) {
			key = obj.Key
		}
	}
	if key == "" {
		return nil, ErrReceiptNotFound
	}

	rc, err := a.client.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get receipt %s: %w", key, err)
	}
	defer rc.Close()

	var r Receipt
	if err := json.NewDecoder(rc).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode receipt %s: %w", key, err)
	}
	return &r, nil
}

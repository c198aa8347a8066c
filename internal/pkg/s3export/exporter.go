package s3export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/civitax/CiviTax/app/models"
)

// Exporter writes payment-record CSV exports to an S3 bucket.
type Exporter struct {
	s3Client *s3.Client
	config   *Config
}

// NewExporter creates an S3 exporter from configuration.
func NewExporter(cfg *Config) (*Exporter, error) {
	if !cfg.IsEnabled() {
		return nil, fmt.Errorf("S3 export is disabled")
	}

	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			o.UsePathStyle = true
		}
	})

	return &Exporter{
		s3Client: s3Client,
		config:   cfg,
	}, nil
}

// ExportPayments renders the payment rows as CSV and uploads the object,
// returning the object key.
func (e *Exporter) ExportPayments(ctx context.Context, payments []models.Payment) (string, error) {
	body, err := PaymentsCSV(payments)
	if err != nil {
		return "", err
	}

	key := e.config.GetObjectKey(time.Now().UTC())
	_, err = e.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload export %s: %w", key, err)
	}

	fiberlog.Infof("[S3Export] Uploaded %d payment rows to %s", len(payments), key)
	return key, nil
}

// PaymentsCSV renders payment rows into CSV bytes with a header row.
func PaymentsCSV(payments []models.Payment) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"id", "user_id", "tax_profile_id", "amount", "payment_type", "gateway_intent_id", "status", "created_at"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, p := range payments {
		intentID := ""
		if p.GatewayIntentID != nil {
			intentID = *p.GatewayIntentID
		}
		record := []string{
			p.ID,
			p.UserID,
			p.TaxProfileID,
			strconv.FormatInt(p.Amount, 10),
			p.PaymentType,
			intentID,
			p.Status,
			p.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

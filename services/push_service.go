package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"metabolic-care/models"
)

// snsAPI is the slice of the SNS client the push service uses.
type snsAPI interface {
	CreatePlatformEndpoint(ctx context.Context, in *awssns.CreatePlatformEndpointInput, optFns ...func(*awssns.Options)) (*awssns.CreatePlatformEndpointOutput, error)
	Publish(ctx context.Context, in *awssns.PublishInput, optFns ...func(*awssns.Options)) (*awssns.PublishOutput, error)
}

// Pusher delivers a notification to every enabled device of a user.
type Pusher interface {
	PushToUser(ctx context.Context, userKey, title, body string, data map[string]string)
}

type PushService struct {
	db             *gorm.DB
	sns            snsAPI
	fcmPlatformArn string
}

// NewPushService loads the default AWS credential chain for region.
func NewPushService(ctx context.Context, db *gorm.DB, region, fcmPlatformArn string) (*PushService, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return newPushService(db, awssns.NewFromConfig(cfg), fcmPlatformArn), nil
}

func newPushService(db *gorm.DB, client snsAPI, fcmPlatformArn string) *PushService {
	return &PushService{db: db, sns: client, fcmPlatformArn: fcmPlatformArn}
}

type RegisterDeviceReq struct {
	Platform string `json:"platform" binding:"required"` // "android" | "ios"
	Token    string `json:"token" binding:"required"`
}

func tokenHash(tok string) string {
	h := sha256.Sum256([]byte(tok))
	return hex.EncodeToString(h[:])
}

func (p *PushService) platformArn(platform string) (string, error) {
	switch strings.ToLower(platform) {
	case "android", "ios":
		if p.fcmPlatformArn == "" {
			return "", errors.New("SNS_FCM_ARN not set")
		}
		return p.fcmPlatformArn, nil
	default:
		return "", validationf("unknown platform %q", platform)
	}
}

// RegisterDevice creates (or refreshes) the SNS endpoint for a device token.
func (p *PushService) RegisterDevice(ctx context.Context, userKey, platform, token string) (*models.UserDevice, error) {
	appArn, err := p.platformArn(platform)
	if err != nil {
		return nil, err
	}

	out, err := p.sns.CreatePlatformEndpoint(ctx, &awssns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(appArn),
		Token:                  aws.String(token),
	})
	if err != nil {
		return nil, fmt.Errorf("create platform endpoint: %w", err)
	}

	hash := tokenHash(token)
	var dev models.UserDevice
	err = p.db.WithContext(ctx).Where("user_key = ? AND token_hash = ?", userKey, hash).First(&dev).Error
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		dev = models.UserDevice{UserKey: userKey, TokenHash: hash, Enabled: true}
	default:
		return nil, err
	}
	dev.Platform = strings.ToLower(platform)
	dev.EndpointARN = aws.ToString(out.EndpointArn)
	dev.UpdatedAt = time.Now()
	if err := p.db.WithContext(ctx).Save(&dev).Error; err != nil {
		return nil, err
	}
	return &dev, nil
}

func (p *PushService) PushToUser(ctx context.Context, userKey, title, body string, data map[string]string) {
	var devices []models.UserDevice
	if err := p.db.WithContext(ctx).Where("user_key = ? AND enabled = ?", userKey, true).Find(&devices).Error; err != nil {
		log.Error().Err(err).Msg("load push devices")
		return
	}
	if len(devices) == 0 {
		return
	}

	// SNS wants the per-platform payload as a JSON string.
	gcm, _ := json.Marshal(map[string]any{
		"notification": map[string]string{"title": title, "body": body},
		"data":         data,
	})
	raw, _ := json.Marshal(map[string]string{"default": body, "GCM": string(gcm)})

	for _, d := range devices {
		_, err := p.sns.Publish(ctx, &awssns.PublishInput{
			MessageStructure: aws.String("json"),
			Message:          aws.String(string(raw)),
			TargetArn:        aws.String(d.EndpointARN),
		})
		if err != nil {
			log.Warn().Err(err).Uint("device_id", d.ID).Msg("sns publish failed")
		}
	}
}

// SetEnabled toggles notifications for every device of a user.
func (p *PushService) SetEnabled(ctx context.Context, userKey string, enabled bool) (int64, error) {
	res := p.db.WithContext(ctx).Model(&models.UserDevice{}).
		Where("user_key = ?", userKey).
		Update("enabled", enabled)
	return res.RowsAffected, res.Error
}

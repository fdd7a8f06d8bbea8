package app

import (
	"time"

	"github.com/miky21x21/tribal-fashion-sub001/internal/config"
	"github.com/miky21x21/tribal-fashion-sub001/internal/logger"
	"github.com/miky21x21/tribal-fashion-sub001/internal/otp"
	"github.com/miky21x21/tribal-fashion-sub001/internal/redis"
	"github.com/miky21x21/tribal-fashion-sub001/internal/sms"
)

type Infra struct {
	Redis    *redis.Client // nil when not configured
	OTPStore otp.Store
	SMS      sms.Sender
}

// setupInfra builds the shared mutable resources. Redis is optional: without
// it the OTP store is process-local, which is fine for a single instance.
func setupInfra(cfg config.Config) (*Infra, error) {
	infra := &Infra{}

	ttl := cfg.OTPTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	if cfg.RedisAddr != "" {
		redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		infra.Redis = redisClient
		infra.OTPStore = otp.NewRedisStore(redisClient.Client, ttl)
		logger.Info("redis ready", nil)
	} else {
		infra.OTPStore = otp.NewMemoryStore(ttl)
		logger.Warn("redis not configured, using in-memory otp store", nil)
	}

	if cfg.SMSGatewayURL != "" {
		infra.SMS = sms.NewGateway(cfg.SMSGatewayURL, cfg.SMSGatewayToken)
	} else {
		infra.SMS = sms.LogSender{}
	}

	return infra, nil
}

func (i *Infra) Close() error {
	if i.Redis != nil {
		return i.Redis.Close()
	}
	return nil
}

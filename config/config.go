package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort     string
	BaseURL        string
	DatabaseDSN    string
	AccessSecret   string
	KafkaBroker    string
	KafkaTopic     string
	KafkaGroupID   string
	KafkaUsername  string
	KafkaPassword  string
	SLASchedule    string
	DigestSchedule string
	MailUser       string
	MailAppPass    string
	MailFrom       string
	MailFromName   string
}

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Println("Warning: .env not loaded:", err)
		}
	}

	return Config{
		ServerPort:     getEnv("SERVER_PORT", ":3000"),
		BaseURL:        getEnv("BASE_URL", "*"),
		DatabaseDSN:    os.Getenv("DATABASE_DSN"),
		AccessSecret:   os.Getenv("ACCESS_SECRET"),
		KafkaBroker:    os.Getenv("KAFKA_BROKER"),
		KafkaTopic:     getEnv("KAFKA_TOPIC", "task-events"),
		KafkaGroupID:   getEnv("KAFKA_GROUP_ID", "task-worker"),
		KafkaUsername:  os.Getenv("KAFKA_USERNAME"),
		KafkaPassword:  os.Getenv("KAFKA_PASSWORD"),
		SLASchedule:    getEnv("SLA_SCHEDULE", "0 * * * *"),
		DigestSchedule: getEnv("DIGEST_SCHEDULE", "0 7 * * *"),
		MailUser:       os.Getenv("MAIL_USER"),
		MailAppPass:    os.Getenv("MAIL_APP_PASSWORD"),
		MailFrom:       os.Getenv("MAIL_FROM"),
		MailFromName:   getEnv("MAIL_FROM_NAME", "Task Service"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

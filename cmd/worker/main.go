package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/SundayYogurt/task_service/config"
	"github.com/SundayYogurt/task_service/infra/queue"
	"github.com/SundayYogurt/task_service/internal/dto"
	"github.com/SundayYogurt/task_service/internal/repository"
	"github.com/SundayYogurt/task_service/internal/services"
	"github.com/robfig/cron/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// assignmentHandler feeds consumed task-assignment events into the jobs
// service, which composes and sends the notification mail.
type assignmentHandler struct {
	jobs services.JobsService
}

func (h *assignmentHandler) HandleMessage(message string) error {
	var event dto.TaskAssignedEvent

	if err := json.Unmarshal([]byte(message), &event); err != nil {
		log.Printf("invalid event payload: %s\n", message)
		return err
	}

	log.Printf("task assigned event received: task_id=%d assignee_id=%d",
		event.TaskID, event.AssigneeID)

	return h.jobs.NotifyTaskAssigned(event)
}

func main() {
	cfg := config.LoadConfig()

	log.Println("Task Worker starting...")
	log.Printf("KafkaBroker=%s Topic=%s GroupID=%s\n",
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaGroupID,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}

	taskRepo := repository.NewTaskRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	userRepo := repository.NewUserRepository(db)

	mailer := services.NewMailService(
		cfg.MailUser,
		cfg.MailAppPass,
		cfg.MailFrom,
		cfg.MailFromName,
	)

	jobs := services.NewJobsService(taskRepo, boardRepo, userRepo, mailer)

	c := cron.New()

	if _, err := c.AddFunc(cfg.SLASchedule, func() {
		if _, err := jobs.CheckSLABreaches(); err != nil {
			log.Printf("SLA sweep failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("failed to schedule SLA sweep: %v", err)
	}

	if _, err := c.AddFunc(cfg.DigestSchedule, func() {
		if err := jobs.SendDailyDigest(); err != nil {
			log.Printf("daily digest failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("failed to schedule daily digest: %v", err)
	}

	c.Start()
	log.Printf("SLA sweep schedule: %s", cfg.SLASchedule)
	log.Printf("Daily digest schedule: %s", cfg.DigestSchedule)

	ctx, cancel := context.WithCancel(context.Background())

	consumer := queue.NewKafkaConsumer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaGroupID,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
		&assignmentHandler{jobs: jobs},
	)

	go consumer.Listen(ctx)
	log.Println("Task Worker listening for events...")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down gracefully...")
	cancel()
	<-c.Stop().Done()
	_ = consumer.Reader.Close()
}

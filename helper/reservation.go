package helper

import (
	"log"
	"time"

	"venue_manager/constants"
	"venue_manager/database"
	"venue_manager/model"

	"github.com/go-co-op/gocron/v2"
	"github.com/robfig/cron/v3"
)

var reservationSweeper *cron.Cron
var reservationScheduler gocron.Scheduler

// StartReservationSweeper cancels PENDING reservations the client never
// confirmed. Runs every 10 minutes.
func StartReservationSweeper() {
	reservationSweeper = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := reservationSweeper.AddFunc("*/10 * * * *", cancelStaleReservations)
	if err != nil {
		log.Printf("failed to start reservation sweeper: %v", err)
		return
	}

	reservationSweeper.Start()
	log.Println("reservation sweeper started (every 10 minutes)")
}

func StopReservationSweeper() {
	if reservationSweeper != nil {
		reservationSweeper.Stop()
	}
}

func cancelStaleReservations() {
	cutoff := time.Now().Add(-48 * time.Hour)
	result := database.DB.Model(&model.Reservation{}).
		Where("status = ? AND created_at < ?", constants.RESERVATION_PENDING, cutoff).
		Update("status", constants.RESERVATION_CANCELLED)

	if result.Error != nil {
		log.Printf("failed to cancel stale reservations: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("cancelled %d stale pending reservations", result.RowsAffected)
	}
}

// StartReservationStatusScheduler completes confirmed reservations whose
// event date has passed, once a day shortly after midnight.
func StartReservationStatusScheduler() {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("failed to create reservation scheduler: %v", err)
		return
	}

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 5, 0),
			),
		),
		gocron.NewTask(CompletePastReservations),
	)
	if err != nil {
		log.Printf("failed to schedule reservation completion job: %v", err)
		return
	}

	s.Start()
	reservationScheduler = s
	log.Println("reservation status scheduler started (daily at 00:05)")
}

func CompletePastReservations() {
	result := database.DB.Model(&model.Reservation{}).
		Where("status = ? AND event_date < ?", constants.RESERVATION_CONFIRMED, time.Now()).
		Update("status", constants.RESERVATION_COMPLETED)

	if result.Error != nil {
		log.Printf("failed to complete past reservations: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("marked %d reservations as completed", result.RowsAffected)
	}
}

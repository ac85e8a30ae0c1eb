// Moderation CLI for the StudyZen chat backend. Runs against the database
// directly; no Redis connection is needed.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"studyzen/backend/internal/config"
	"studyzen/backend/internal/models"
	"studyzen/backend/internal/storage"
)

func main() {
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	storageSvc := storage.NewStorageService(db, nil)

	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "reports":
		listReports(storageSvc)
	case "resolve":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin resolve <report_id>")
			os.Exit(1)
		}
		id, err := strconv.ParseUint(os.Args[2], 10, 32)
		if err != nil {
			fmt.Println("Invalid report id.")
			os.Exit(1)
		}
		if err := storageSvc.ResolveReport(uint(id), models.ReportStatusResolved); err != nil {
			log.Fatalf("error resolving report: %v", err)
		}
		fmt.Printf("Report %d resolved.\n", id)
	case "history":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin history <room_id>")
			os.Exit(1)
		}
		dumpHistory(storageSvc, os.Args[2])
	case "close-rooms":
		closeStaleRooms(storageSvc)
	default:
		usage()
	}
}

func usage() {
	fmt.Println("Usage: admin <reports|resolve|history|close-rooms> [args]")
	os.Exit(1)
}

func listReports(s storage.Storage) {
	reports, err := s.GetPendingReports()
	if err != nil {
		log.Fatalf("error loading reports: %v", err)
	}
	if len(reports) == 0 {
		fmt.Println("No pending reports.")
		return
	}
	for _, r := range reports {
		fmt.Printf("#%d [%s] severity=%d room=%s reported=%s reasons=%v\n",
			r.ID, r.Status, r.Severity, r.RoomID, r.ReportedID, []string(r.Reasons))
	}
}

func dumpHistory(s storage.Storage, roomID string) {
	history, err := s.GetChatHistory(roomID)
	if err != nil {
		log.Fatalf("error loading history: %v", err)
	}
	if len(history) == 0 {
		fmt.Println("No messages recorded for this room.")
		return
	}
	for _, msg := range history {
		fmt.Printf("%s  %s: %s\n", msg.CreatedAt.Format("2006-01-02 15:04:05"), msg.SenderID, msg.Content)
	}
}

// closeStaleRooms closes every room still marked active. Rooms only stay
// active in the database if the process died before the relay could close
// them, so this is a cleanup for use after an unclean shutdown.
func closeStaleRooms(s storage.Storage) {
	roomIDs, err := s.GetActiveRoomIDs()
	if err != nil {
		log.Fatalf("error loading active rooms: %v", err)
	}
	for _, roomID := range roomIDs {
		if err := s.CloseRoom(roomID); err != nil {
			log.Printf("failed to close room %s: %v", roomID, err)
			continue
		}
		fmt.Printf("Closed room %s.\n", roomID)
	}
	fmt.Printf("Done, %d room(s) processed.\n", len(roomIDs))
}

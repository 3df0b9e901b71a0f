package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cuppanote/cuppa-backend/internal/config"
	"github.com/cuppanote/cuppa-backend/internal/modules/backup"
	"github.com/cuppanote/cuppa-backend/internal/modules/inventory"
	"github.com/cuppanote/cuppa-backend/internal/modules/menu"
	"github.com/cuppanote/cuppa-backend/internal/modules/order"
	"github.com/cuppanote/cuppa-backend/internal/modules/report"
	"github.com/cuppanote/cuppa-backend/internal/modules/settings"
	"github.com/cuppanote/cuppa-backend/internal/modules/waste"
	"github.com/cuppanote/cuppa-backend/internal/store"
)

func main() {
	cfg := config.Load()

	st, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()
	fmt.Printf("Slot store ready at %s\n", cfg.DBPath)

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Orders ──────────────────────────────────────────────
	orderRepo := order.NewSlotRepository(st)
	orderService := order.NewService(orderRepo)
	order.NewHandler(orderService).RegisterRoutes(router)

	// ── Menu & Inventory ────────────────────────────────────
	menuRepo := menu.NewSlotRepository(st)
	menuService := menu.NewService(menuRepo)
	menu.NewHandler(menuService).RegisterRoutes(router)
	if cfg.SeedMenu {
		if err := menuService.Seed(context.Background()); err != nil {
			log.Fatal(err)
		}
	}

	inventoryRepo := inventory.NewSlotRepository(st)
	inventoryService := inventory.NewService(inventoryRepo)
	inventory.NewHandler(inventoryService).RegisterRoutes(router)

	// ── Waste ───────────────────────────────────────────────
	wasteRepo := waste.NewSlotRepository(st)
	wasteService := waste.NewService(wasteRepo)
	waste.NewHandler(wasteService).RegisterRoutes(router)

	// ── Reporting ───────────────────────────────────────────
	reportService := report.NewService(orderRepo)
	report.NewHandler(reportService).RegisterRoutes(router)

	// ── Settings & Backup ───────────────────────────────────
	settingsRepo := settings.NewSlotRepository(st)
	settingsService := settings.NewService(settingsRepo)
	settings.NewHandler(settingsService).RegisterRoutes(router)

	backupService := backup.NewService(st)
	backup.NewHandler(backupService).RegisterRoutes(router)

	// ── Start Server ─────────────────────────────────────────
	fmt.Printf("Cuppa API server starting on :%s\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, router))
}

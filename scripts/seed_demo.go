package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"hotelier/internal/database"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v2"
)

type SeedConfig struct {
	Hotels []SeedHotel `yaml:"hotels"`
	Users  []SeedUser  `yaml:"users"`
}

type SeedHotel struct {
	Name         string     `yaml:"name"`
	Address      string     `yaml:"address"`
	City         string     `yaml:"city"`
	Country      string     `yaml:"country"`
	ContactEmail string     `yaml:"contact_email"`
	MaxCapacity  int        `yaml:"max_capacity"`
	Rooms        []SeedRoom `yaml:"rooms"`
}

type SeedRoom struct {
	RoomNumber    string  `yaml:"room_number"`
	Type          string  `yaml:"type"`
	PricePerNight float64 `yaml:"price_per_night"`
	Description   string  `yaml:"description"`
	MaxOccupancy  int     `yaml:"max_occupancy"`
}

type SeedUser struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
	Hotel    string `yaml:"hotel"` // имя отеля для admin_hotel
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	var (
		seedPath = flag.String("seed", "configs/seed.yaml", "path to seed.yaml")
		dbPath   = flag.String("db", "./data/hotelier.db", "path to sqlite db")
	)
	flag.Parse()

	data, err := os.ReadFile(*seedPath)
	if err != nil {
		return fmt.Errorf("read seed: %w", err)
	}
	var cfg SeedConfig
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse seed: %w", err)
	}
	if len(cfg.Hotels) == 0 && len(cfg.Users) == 0 {
		return fmt.Errorf("nothing to seed")
	}

	db, err := database.NewDB(*dbPath, &logger)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	hotelIDs := make(map[string]int64, len(cfg.Hotels))
	hotels := 0
	rooms := 0
	for _, sh := range cfg.Hotels {
		if sh.Name == "" {
			continue
		}
		hotel := &models.Hotel{
			Name:         sh.Name,
			Address:      sh.Address,
			City:         sh.City,
			Country:      sh.Country,
			ContactEmail: sh.ContactEmail,
			MaxCapacity:  sh.MaxCapacity,
			IsActive:     true,
		}
		if err = db.CreateHotel(ctx, hotel); err != nil {
			return fmt.Errorf("create hotel %s: %w", sh.Name, err)
		}
		hotelIDs[sh.Name] = hotel.ID
		hotels++

		for _, sr := range sh.Rooms {
			room := &models.Room{
				HotelID:       hotel.ID,
				RoomNumber:    sr.RoomNumber,
				Type:          sr.Type,
				PricePerNight: sr.PricePerNight,
				Description:   sr.Description,
				MaxOccupancy:  sr.MaxOccupancy,
				IsAvailable:   true,
			}
			if err = db.CreateRoom(ctx, room); err != nil {
				return fmt.Errorf("create room %s/%s: %w", sh.Name, sr.RoomNumber, err)
			}
			rooms++
		}
	}

	users := 0
	for _, su := range cfg.Users {
		if su.Email == "" || su.Password == "" {
			continue
		}
		if _, err = db.GetUserByEmail(ctx, su.Email); err == nil {
			logger.Info().Str("email", su.Email).Msg("user exists, skipping")
			continue
		} else if !errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("lookup %s: %w", su.Email, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", su.Email, err)
		}
		role := su.Role
		if role == "" {
			role = models.RoleViewer
		}
		user := &models.User{
			Name:           su.Name,
			Email:          su.Email,
			HashedPassword: string(hash),
			Role:           role,
			HotelID:        hotelIDs[su.Hotel],
			IsActive:       true,
		}
		if err = db.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("create user %s: %w", su.Email, err)
		}
		users++
	}

	logger.Info().Int("hotels", hotels).Int("rooms", rooms).Int("users", users).Msg("seed finished")
	return nil
}

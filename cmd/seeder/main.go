// cmd/seeder/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"

	"github.com/unclebandit/customer-admin/internal/config"
	"github.com/unclebandit/customer-admin/internal/db"
	"github.com/unclebandit/customer-admin/internal/logger"
	"github.com/unclebandit/customer-admin/internal/model"
	"github.com/unclebandit/customer-admin/internal/repository"
)

var platforms = []string{"Instagram", "Twitter", "Facebook", "TikTok", "LinkedIn", "GitHub"}

func main() {
	count := flag.Int("count", 20, "number of customers to insert")
	seed := flag.Uint64("seed", 0, "faker seed (0 picks a random one)")
	flag.Parse()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)
	defer log.Sync()

	ctx := context.Background()

	if err := db.Migrate(cfg.Database, log); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}

	conn, err := db.Open(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	defer conn.Close()

	repo := &repository.CustomerRepository{DB: conn}
	faker := gofakeit.New(*seed)

	for i := 0; i < *count; i++ {
		c := fakeCustomer(faker)
		if err := repo.Create(ctx, &c); err != nil {
			log.Fatal("seed customer", zap.Int("index", i), zap.Error(err))
		}
	}

	log.Info("database seeding completed", zap.Int("customers", *count))
}

// fakeCustomer builds a customer with zero to three social media handles.
func fakeCustomer(f *gofakeit.Faker) model.Customer {
	c := model.Customer{
		Name:        f.Name(),
		Email:       f.Email(),
		Description: f.Sentence(8),
	}
	for n := f.Number(0, 3); n > 0; n-- {
		c.SocialMedia = append(c.SocialMedia, model.SocialMedia{
			SocialMediaName: platforms[f.Number(0, len(platforms)-1)],
			Username:        f.Username(),
		})
	}
	return c
}

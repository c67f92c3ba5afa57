package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/config"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/database"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/logger"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/model"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/repository"
)

var firstNames = []string{
	"Ana", "Bruno", "Carla", "Davi", "Eduarda", "Felipe", "Gabriela", "Heitor", "Isabela", "João",
	"Larissa", "Miguel", "Natália", "Otávio", "Paula", "Rafael", "Sofia", "Thiago", "Valentina", "Yuri",
}

var lastNames = []string{"Silva", "Souza", "Oliveira", "Santos", "Pereira", "Lima", "Costa", "Almeida"}

func main() {
	var schoolID, perClass int
	flag.IntVar(&schoolID, "school", 0, "School id whose classes receive the students")
	flag.IntVar(&perClass, "per-class", 10, "Students created in each active class")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	if schoolID <= 0 || perClass <= 0 {
		flag.Usage()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	classRepo := repository.NewClassRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)

	classes, err := classRepo.ListActiveWithCounts(ctx, schoolID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list classes")
	}
	if len(classes) == 0 {
		fmt.Printf("School %d has no active classes.\n", schoolID)
		return
	}

	fmt.Printf("=== Seeding %d students into %d classes ===\n", perClass*len(classes), len(classes))

	successCount, n := 0, 0
	for _, class := range classes {
		for i := 0; i < perClass; i++ {
			n++
			name := fmt.Sprintf("%s %s", firstNames[n%len(firstNames)], lastNames[n%len(lastNames)])
			phone := fmt.Sprintf("(11) 9%04d-%04d", schoolID%10000, n%10000)
			guardianEmail := fmt.Sprintf("responsavel%d.escola%d@example.com", n, schoolID)
			guardian := &model.Guardian{
				Name:  "Responsável de " + name,
				Email: &guardianEmail,
				Phone: &phone,
			}

			err := database.WithTx(ctx, pool, func(tx pgx.Tx) error {
				_, err := studentRepo.WithTx(tx).Enroll(ctx, class.ID, name, nil, guardian)
				return err
			})
			if err != nil {
				fmt.Printf("Error creating student %s in %s: %v\n", name, class.Name, err)
				continue
			}
			successCount++
		}
		fmt.Printf("Seeded class %s (id %d)\n", class.Name, class.ID)
	}

	fmt.Printf("\nSeed completed! Successfully added %d/%d students.\n", successCount, n)
}

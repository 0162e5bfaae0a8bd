package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"class-timetable/internal/config"
	"class-timetable/internal/domain/schedule"
	interfaces "class-timetable/internal/interfaces/service"
	"class-timetable/internal/service"
	"class-timetable/pkg/logger"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Catalog is the YAML layout accepted by the seed command.
type Catalog struct {
	Lectures []CatalogLecture `yaml:"lectures"`
}

type CatalogLecture struct {
	LectureName string            `yaml:"lectureName"`
	Professor   string            `yaml:"professor"`
	Credit      float64           `yaml:"credit"`
	Department  string            `yaml:"department"`
	Times       []CatalogTimeSlot `yaml:"times"`
}

type CatalogTimeSlot struct {
	LectureTimeID string `yaml:"lectureTimeId"`
	StartTime     string `yaml:"startTime"`
	EndTime       string `yaml:"endTime"`
	LectureNumber string `yaml:"lectureNumber"`
}

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load lectures and time slots from a YAML catalogue",
	Long: `Create the lectures and time slots listed in a YAML catalogue.
Time slots whose id already exists are skipped, so a catalogue can be
extended and re-applied. Lectures are always created anew.`,
	Run: func(cmd *cobra.Command, args []string) {
		runSeed()
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "configs/catalog.example.yaml", "Catalogue file to load")
}

func loadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue: %w", err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalogue: %w", err)
	}
	if len(catalog.Lectures) == 0 {
		return nil, fmt.Errorf("catalogue %s has no lectures", path)
	}
	return &catalog, nil
}

// applyCatalog creates every lecture and its time slots. It returns the
// number of lectures and time slots created.
func applyCatalog(ctx context.Context, catalogService interfaces.CatalogService, catalog *Catalog) (int, int, error) {
	var lectures, slots int
	for _, l := range catalog.Lectures {
		lecture, err := catalogService.CreateLecture(ctx, "", &interfaces.CreateLectureRequest{
			LectureName: l.LectureName,
			Professor:   l.Professor,
			Credit:      l.Credit,
			Department:  l.Department,
		})
		if err != nil {
			return lectures, slots, fmt.Errorf("lecture %q: %w", l.LectureName, err)
		}
		lectures++

		for _, t := range l.Times {
			_, err := catalogService.AddTimeSlot(ctx, lecture.ID, &interfaces.CreateTimeSlotRequest{
				LectureTimeID: t.LectureTimeID,
				StartTime:     t.StartTime,
				EndTime:       t.EndTime,
				LectureNumber: t.LectureNumber,
			})
			if errors.Is(err, schedule.ErrDuplicateTimeSlot) {
				logger.Warn("Time slot %s already exists, skipping", t.LectureTimeID)
				continue
			}
			if err != nil {
				return lectures, slots, fmt.Errorf("time slot %q of %q: %w", t.LectureTimeID, l.LectureName, err)
			}
			slots++
		}
	}
	return lectures, slots, nil
}

func runSeed() {
	cfg := config.Get()
	ctx := context.Background()

	catalog, err := loadCatalog(seedFile)
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	be, err := openBackend(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	defer be.Close()

	if _, err := be.migrator.RunMigrations(ctx); err != nil {
		logger.Error("Migration failed: %v", err)
		os.Exit(1)
	}

	catalogService := service.NewCatalogService(be.stores.Lectures, be.stores.TimeSlots)
	lectures, slots, err := applyCatalog(ctx, catalogService, catalog)
	if err != nil {
		logger.Error("Seeding stopped after %d lectures: %v", lectures, err)
		os.Exit(1)
	}

	fmt.Printf("Seeded %d lectures and %d time slots from %s\n", lectures, slots, seedFile)
}

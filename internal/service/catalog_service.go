package service

import (
	"alcyxob/gymbuddy/internal/domain"
	"alcyxob/gymbuddy/internal/repository"
	"context"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DocumentOpener opens a document by location (file path or s3://bucket/key).
type DocumentOpener interface {
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}

// catalogDocument is the YAML layout of a catalog seed file:
//
//	exercises:
//	  - name: Bench Press
//	    main_muscle_group: Chest
//	    primary_equipment: Barbell
//	    grip_style: Overhand
type catalogDocument struct {
	Exercises []domain.AvailableExercise `yaml:"exercises"`
}

// --- Service Interface ---
type CatalogService interface {
	// Seed loads a catalog document from source and upserts its entries.
	Seed(ctx context.Context, source string) (int, error)
}

type catalogService struct {
	catalog repository.CatalogRepository
	opener  DocumentOpener
}

// NewCatalogService creates a new instance of catalogService.
func NewCatalogService(catalog repository.CatalogRepository, opener DocumentOpener) CatalogService {
	return &catalogService{
		catalog: catalog,
		opener:  opener,
	}
}

func (s *catalogService) Seed(ctx context.Context, source string) (int, error) {
	if source == "" {
		return 0, kindError(ErrInvalidArgument, "catalog source is required")
	}

	rc, err := s.opener.Open(ctx, source)
	if err != nil {
		return 0, fmt.Errorf("open catalog %s: %w", source, err)
	}
	defer rc.Close()

	exercises, err := ParseCatalog(rc)
	if err != nil {
		return 0, fmt.Errorf("parse catalog %s: %w", source, err)
	}

	n, err := s.catalog.Upsert(ctx, exercises)
	if err != nil {
		return 0, fmt.Errorf("upsert catalog: %w", err)
	}
	log.Infof("seeded %d catalog exercises from %s", n, source)
	return n, nil
}

// ParseCatalog decodes and validates a catalog seed document.
func ParseCatalog(r io.Reader) ([]domain.AvailableExercise, error) {
	var doc catalogDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, kindError(ErrInvalidArgument, "catalog document is empty")
		}
		return nil, kindError(ErrInvalidArgument, err.Error())
	}

	for i := range doc.Exercises {
		e := &doc.Exercises[i]
		e.Name = strings.TrimSpace(e.Name)
		e.MainMuscleGroup = strings.TrimSpace(e.MainMuscleGroup)
		e.PrimaryEquipment = strings.TrimSpace(e.PrimaryEquipment)
		if e.Name == "" || e.MainMuscleGroup == "" {
			return nil, kindError(ErrInvalidArgument, fmt.Sprintf("exercise #%d needs a name and a main_muscle_group", i+1))
		}
		if e.GripStyle != nil && strings.TrimSpace(*e.GripStyle) == "" {
			e.GripStyle = nil
		}
	}
	return doc.Exercises, nil
}

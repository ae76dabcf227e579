package db

import (
	"context"

	"avisportal/models"

	"github.com/jmoiron/sqlx"
)

type Storage struct {
	db *sqlx.DB
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

// Avis

func (s *Storage) CreateAvis(ctx context.Context, a *models.Avis) error {
	query := `
        INSERT INTO avis
            (nom, prenom, departement, type_avis, priorite, statut, assigne_a, date_limite, is_anonyme, message)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, created_at`
	return s.db.QueryRowContext(ctx, query,
		a.Nom, a.Prenom, a.Departement, a.TypeAvis, a.Priorite, a.Statut,
		a.AssigneA, a.DateLimite, a.IsAnonyme, a.Message).
		Scan(&a.ID, &a.CreatedAt)
}

// ListAvis returns every entry, newest first.
func (s *Storage) ListAvis(ctx context.Context) ([]models.Avis, error) {
	query := `
        SELECT id, nom, prenom, departement, type_avis, priorite, statut,
               assigne_a, date_limite, is_anonyme, message, created_at
        FROM avis
        ORDER BY created_at DESC`
	avis := []models.Avis{}
	err := s.db.SelectContext(ctx, &avis, query)
	if err != nil {
		return nil, err
	}
	return avis, nil
}

func (s *Storage) UpdateAvis(ctx context.Context, id int, upd models.AvisUpdate) error {
	query := `
        UPDATE avis
        SET statut=$1, priorite=$2, assigne_a=$3, date_limite=$4
        WHERE id=$5`
	_, err := s.db.ExecContext(ctx, query,
		upd.Statut, upd.Priorite, upd.AssigneA, upd.DateLimite, id)
	return err
}

func (s *Storage) DeleteAvis(ctx context.Context, id int) error {
	query := `DELETE FROM avis WHERE id=$1`
	_, err := s.db.ExecContext(ctx, query, id)
	return err
}

// Commentaires

func (s *Storage) CreateCommentaire(ctx context.Context, c *models.Commentaire) error {
	query := `
        INSERT INTO directeur_commentaires (avis_id, auteur_email, contenu)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`
	return s.db.QueryRowContext(ctx, query, c.AvisID, c.AuteurEmail, c.Contenu).
		Scan(&c.ID, &c.CreatedAt)
}

// ListCommentairesByAvis fetches comments for the given entry ids, newest
// first. An empty id set short-circuits without touching the database.
func (s *Storage) ListCommentairesByAvis(ctx context.Context, avisIDs []int) ([]models.Commentaire, error) {
	comments := []models.Commentaire{}
	if len(avisIDs) == 0 {
		return comments, nil
	}

	query, args, err := sqlx.In(`
        SELECT id, avis_id, auteur_email, contenu, created_at
        FROM directeur_commentaires
        WHERE avis_id IN (?)
        ORDER BY created_at DESC`, avisIDs)
	if err != nil {
		return nil, err
	}
	query = s.db.Rebind(query)

	err = s.db.SelectContext(ctx, &comments, query, args...)
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// Directeur

func (s *Storage) GetDirecteurByEmail(ctx context.Context, email string) (*models.Directeur, error) {
	d := &models.Directeur{}
	query := `SELECT * FROM directeurs WHERE email=$1`
	err := s.db.GetContext(ctx, d, query, email)
	return d, err
}

func (s *Storage) CreateDirecteur(ctx context.Context, d *models.Directeur) error {
	query := `
        INSERT INTO directeurs (email, password_hash)
        VALUES ($1, $2)
        RETURNING id, created_at`
	return s.db.QueryRowContext(ctx, query, d.Email, d.PasswordHash).
		Scan(&d.ID, &d.CreatedAt)
}

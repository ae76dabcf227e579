package models

import "time"

// Sentinel identity written on anonymous submissions
const (
	AnonymousNom    = "Anonyme"
	AnonymousPrenom = "Employe"
)

// FilterAll in a criteria field means "no restriction"
const FilterAll = "Tous"

var Departements = []string{"Caisse", "Epicerie", "Boulangerie", "Boucherie", "Direction", "Autre"}

var TypesAvis = []string{"Probleme", "Idee d'amelioration", "Suggestion", "Urgent"}

var Statuts = []string{"Nouveau", "En cours", "Resolu"}

var Priorites = []string{"Basse", "Moyenne", "Haute", "Urgente"}

// Avis is one employee feedback entry
type Avis struct {
	ID          int        `db:"id" json:"id"`
	Nom         string     `db:"nom" json:"nom"`
	Prenom      string     `db:"prenom" json:"prenom"`
	Departement string     `db:"departement" json:"departement" validate:"required"`
	TypeAvis    string     `db:"type_avis" json:"typeAvis" validate:"required"`
	Priorite    string     `db:"priorite" json:"priorite" validate:"required,oneof=Basse Moyenne Haute Urgente"`
	Statut      string     `db:"statut" json:"statut" validate:"required"`
	AssigneA    *string    `db:"assigne_a" json:"assigneA"`
	DateLimite  *time.Time `db:"date_limite" json:"dateLimite"`
	IsAnonyme   bool       `db:"is_anonyme" json:"isAnonyme"`
	Message     string     `db:"message" json:"message" validate:"required"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
}

// AvisUpdate carries the four director-mutable fields
type AvisUpdate struct {
	Statut     string     `db:"statut" json:"statut"`
	Priorite   string     `db:"priorite" json:"priorite"`
	AssigneA   *string    `db:"assigne_a" json:"assigneA"`
	DateLimite *time.Time `db:"date_limite" json:"dateLimite"`
}

// Commentaire is an internal director annotation, never shown to employees
type Commentaire struct {
	ID          int       `db:"id" json:"id"`
	AvisID      int       `db:"avis_id" json:"avisId"`
	AuteurEmail string    `db:"auteur_email" json:"auteurEmail"`
	Contenu     string    `db:"contenu" json:"contenu" validate:"required"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// Directeur is a reviewer account (for login)
type Directeur struct {
	ID           int       `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// FilterCriteria is client-only. An empty field or FilterAll means no
// restriction. Dates use "2006-01-02"; DateTo is inclusive up to
// 23:59:59.999 local time.
type FilterCriteria struct {
	Departement string `json:"departement"`
	Statut      string `json:"statut"`
	Priorite    string `json:"priorite"`
	Search      string `json:"search"`
	DateFrom    string `json:"dateFrom"`
	DateTo      string `json:"dateTo"`
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func IsValidDepartement(v string) bool { return contains(Departements, v) }
func IsValidTypeAvis(v string) bool    { return contains(TypesAvis, v) }
func IsValidStatut(v string) bool      { return contains(Statuts, v) }
func IsValidPriorite(v string) bool    { return contains(Priorites, v) }

package model

import "time"

type Book struct {
	ID        ID        `json:"id"`
	ShelfCode string    `json:"no_rak"`
	Title     string    `json:"judul"`
	Author    string    `json:"pengarang"`
	Publisher string    `json:"penerbit"`
	Year      Int       `json:"tahun_terbit"`
	Stock     Int       `json:"stok"`
	Detail    string    `json:"detail"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

func (b Book) Available() bool { return b.Stock > 0 }

type BookRequest struct {
	ShelfCode string `json:"no_rak" validate:"required"`
	Title     string `json:"judul" validate:"required"`
	Author    string `json:"pengarang" validate:"required"`
	Publisher string `json:"penerbit" validate:"required"`
	Year      Int    `json:"tahun_terbit" validate:"required,gte=1000,lte=9999"`
	Stock     Int    `json:"stok" validate:"gte=0"`
	Detail    string `json:"detail"`
}

// BookOptions feeds the year and publisher filter dropdowns.
type BookOptions struct {
	Years      []string `json:"years"`
	Publishers []string `json:"publishers"`
}

type Member struct {
	ID         ID        `json:"id"`
	NationalID string    `json:"no_ktp"`
	Name       string    `json:"nama"`
	Address    string    `json:"alamat"`
	BirthDate  Date      `json:"tgl_lahir"`
	CreatedAt  Timestamp `json:"created_at"`
	UpdatedAt  Timestamp `json:"updated_at"`
}

type MemberRequest struct {
	NationalID string `json:"no_ktp" validate:"required,nik"`
	Name       string `json:"nama" validate:"required"`
	Address    string `json:"alamat" validate:"required"`
	BirthDate  Date   `json:"tgl_lahir"`
}

type Lending struct {
	ID           ID        `json:"id"`
	BookID       ID        `json:"id_buku"`
	MemberID     ID        `json:"id_member"`
	BorrowDate   Date      `json:"tgl_pinjam"`
	DueDate      Date      `json:"tgl_pengembalian"`
	ReturnedDate Date      `json:"tgl_dikembalikan"`
	Returned     Flag      `json:"status_pengembalian"`
	CreatedAt    Timestamp `json:"created_at"`
	UpdatedAt    Timestamp `json:"updated_at"`
}

func (l Lending) IsReturned() bool { return l.Returned == 1 }

type LendingRequest struct {
	BookID     ID   `json:"id_buku"`
	MemberID   ID   `json:"id_member"`
	BorrowDate Date `json:"tgl_pinjam"`
	DueDate    Date `json:"tgl_pengembalian"`
}

// ReturnRequest is the body of the upstream "process return" call.
type ReturnRequest struct {
	ReturnedDate Date `json:"tgl_dikembalikan"`
	Returned     Flag `json:"status_pengembalian"`
}

type LendingStatus string

const (
	LendingActive   LendingStatus = "active"
	LendingReturned LendingStatus = "returned"
	LendingOverdue  LendingStatus = "overdue"
)

// LendingView is a lending enriched for the lendings screen.
type LendingView struct {
	Lending    `json:",inline"`
	BookTitle  string        `json:"judul"`
	ShelfCode  string        `json:"no_rak"`
	MemberName string        `json:"nama"`
	NationalID string        `json:"no_ktp"`
	Status     LendingStatus `json:"status"`
	DaysLate   int           `json:"hari_terlambat"`
}

// ReturnPreview is what the operator sees before confirming a return.
type ReturnPreview struct {
	LendingID ID     `json:"id"`
	DueDate   Date   `json:"tgl_pengembalian"`
	Today     Date   `json:"hari_ini"`
	Overdue   bool   `json:"terlambat"`
	DaysLate  int    `json:"hari_terlambat"`
	LateFee   Rupiah `json:"denda_keterlambatan"`
}

type FineType string

const (
	FineLate   FineType = "terlambat"
	FineDamage FineType = "kerusakan"
	FineOther  FineType = "lainnya"
)

type FineStatus string

const (
	FineUnpaid FineStatus = "Belum Dibayar"
	FinePaid   FineStatus = "Sudah Dibayar"
)

type Fine struct {
	ID          ID         `json:"id"`
	MemberID    ID         `json:"id_member"`
	BookID      ID         `json:"id_buku"`
	Amount      Rupiah     `json:"jumlah_denda"`
	Type        FineType   `json:"jenis_denda"`
	Description string     `json:"deskripsi"`
	Status      FineStatus `json:"status"`
	CreatedAt   Timestamp  `json:"created_at"`
	UpdatedAt   Timestamp  `json:"updated_at"`
}

// PaymentStatus treats a missing status as unpaid.
func (f Fine) PaymentStatus() FineStatus {
	if f.Status == "" {
		return FineUnpaid
	}
	return f.Status
}

func (f Fine) IsPaid() bool { return f.PaymentStatus() == FinePaid }

type FineRequest struct {
	MemberID    ID       `json:"id_member" validate:"required"`
	BookID      ID       `json:"id_buku,omitempty"`
	Amount      Rupiah   `json:"jumlah_denda" validate:"gt=0"`
	Type        FineType `json:"jenis_denda" validate:"required,oneof=terlambat kerusakan lainnya"`
	Description string   `json:"deskripsi" validate:"required"`
}

// FineUpdate is the body of the upstream fine update; status is the only mutable field.
type FineUpdate struct {
	MemberID    ID         `json:"id_member"`
	BookID      ID         `json:"id_buku,omitempty"`
	Amount      Rupiah     `json:"jumlah_denda"`
	Type        FineType   `json:"jenis_denda"`
	Description string     `json:"deskripsi"`
	Status      FineStatus `json:"status"`
}

type FineView struct {
	Fine       `json:",inline"`
	MemberName string `json:"nama"`
	BookTitle  string `json:"judul"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token   string `json:"token"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Message string `json:"message"`
}

// Session is a signed-in librarian. Token is the upstream bearer token and never leaves the server.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"-"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/medregistry/clinic-backend/internal/dto"
	"github.com/medregistry/clinic-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterConcatenatesName(t *testing.T) {
	db := newTestDB(t)
	svc := NewClientService(db)

	client, err := svc.Register(&dto.RegisterClientRequest{
		FirstName: "John",
		LastName:  "Doe",
		DOB:       "1990-01-01",
		Gender:    "Male",
		Contact:   "712345678",
		Address:   "123 Street",
	})
	require.NoError(t, err)
	assert.Equal(t, "John Doe", client.Name)
	assert.Empty(t, client.Programs)
}

func TestRegisterRequiresName(t *testing.T) {
	svc := NewClientService(newTestDB(t))

	_, err := svc.Register(&dto.RegisterClientRequest{FirstName: "John", LastName: ""})
	assert.ErrorIs(t, err, ErrClientName)
}

func TestUpdateOverwritesFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewClientService(db)
	created := seedClient(t, db, svc, "John", "Doe", "1990-01-01")

	updated, err := svc.Update(created.ID, &dto.UpdateClientRequest{
		FirstName: "Jane",
		LastName:  "Smith",
		DOB:       "1985-05-05",
		Gender:    "Female",
		Contact:   "999",
		Address:   "456 Avenue",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", updated.Name)
	assert.Equal(t, "1985-05-05", updated.DOB)
	assert.Equal(t, "456 Avenue", updated.Address)
}

func TestUpdateUnknownClient(t *testing.T) {
	svc := NewClientService(newTestDB(t))

	_, err := svc.Update(uuid.New(), &dto.UpdateClientRequest{FirstName: "A", LastName: "B"})
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestSearch(t *testing.T) {
	db := newTestDB(t)
	svc := NewClientService(db)
	seedClient(t, db, svc, "John", "Doe", "1990-01-01")
	seedClient(t, db, svc, "Jane", "Doe", "1991-01-01")
	seedClient(t, db, svc, "Bob", "Smith", "1992-01-01")

	all, err := svc.Search("")
	require.NoError(t, err)
	assert.Len(t, all, 3, "empty query returns every client")

	does, err := svc.Search("dOe")
	require.NoError(t, err)
	require.Len(t, does, 2)
	for _, c := range does {
		assert.Contains(t, c.Name, "Doe")
	}

	none, err := svc.Search("zzz")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSetProgramsReplacesSet(t *testing.T) {
	db := newTestDB(t)
	svc := NewClientService(db)
	doctor := seedDoctor(t, db, "drwho", "Dr Who")
	client := seedClient(t, db, svc, "John", "Doe", "1990-01-01")

	diabetes := seedProgram(t, db, "Diabetes Care", doctor.ID)
	hiv := seedProgram(t, db, "HIV Support", doctor.ID)
	tb := seedProgram(t, db, "TB Outreach", doctor.ID)

	got, err := svc.SetPrograms(client.ID, []uuid.UUID{diabetes.ID, hiv.ID})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Diabetes Care", "HIV Support"}, got.Programs)

	// Replacement, not union: the new set completely supersedes the old.
	got, err = svc.SetPrograms(client.ID, []uuid.UUID{tb.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"TB Outreach"}, got.Programs)
}

func TestSetProgramsIgnoresUnknownIDs(t *testing.T) {
	db := newTestDB(t)
	svc := NewClientService(db)
	doctor := seedDoctor(t, db, "drwho", "Dr Who")
	client := seedClient(t, db, svc, "John", "Doe", "1990-01-01")
	diabetes := seedProgram(t, db, "Diabetes Care", doctor.ID)

	got, err := svc.SetPrograms(client.ID, []uuid.UUID{diabetes.ID, uuid.New(), uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, []string{"Diabetes Care"}, got.Programs)
}

func TestSetProgramsEmptyClearsSet(t *testing.T) {
	db := newTestDB(t)
	svc := NewClientService(db)
	doctor := seedDoctor(t, db, "drwho", "Dr Who")
	client := seedClient(t, db, svc, "John", "Doe", "1990-01-01")
	diabetes := seedProgram(t, db, "Diabetes Care", doctor.ID)

	_, err := svc.SetPrograms(client.ID, []uuid.UUID{diabetes.ID})
	require.NoError(t, err)

	got, err := svc.SetPrograms(client.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, got.Programs)
}

func TestSetProgramsUnknownClient(t *testing.T) {
	svc := NewClientService(newTestDB(t))

	_, err := svc.SetPrograms(uuid.New(), nil)
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestDeleteClientLeavesPrograms(t *testing.T) {
	db := newTestDB(t)
	svc := NewClientService(db)
	doctor := seedDoctor(t, db, "drwho", "Dr Who")
	client := seedClient(t, db, svc, "John", "Doe", "1990-01-01")
	diabetes := seedProgram(t, db, "Diabetes Care", doctor.ID)

	_, err := svc.SetPrograms(client.ID, []uuid.UUID{diabetes.ID})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(client.ID))

	_, err = svc.Get(client.ID)
	assert.ErrorIs(t, err, ErrClientNotFound)

	var program models.Program
	require.NoError(t, db.Preload("Clients").First(&program, "id = ?", diabetes.ID).Error)
	assert.Empty(t, program.Clients, "membership rows must go with the client")
}

func TestDeleteProgramLeavesClients(t *testing.T) {
	db := newTestDB(t)
	clientSvc := NewClientService(db)
	programSvc := NewProgramService(db)
	doctor := seedDoctor(t, db, "drwho", "Dr Who")
	client := seedClient(t, db, clientSvc, "John", "Doe", "1990-01-01")
	diabetes := seedProgram(t, db, "Diabetes Care", doctor.ID)

	_, err := clientSvc.SetPrograms(client.ID, []uuid.UUID{diabetes.ID})
	require.NoError(t, err)

	require.NoError(t, programSvc.Delete(diabetes.ID))

	got, err := clientSvc.Get(client.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Programs, "the deleted program must leave every enrolled set")
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/colibri-edu/content-service/internal/models"
	"github.com/colibri-edu/content-service/internal/repositories"
)

// MockRepository is the in-memory Repository shared by the service tests. It
// records every mutation in ops so tests can assert the order deletes and
// inserts run in.
type MockRepository struct {
	grados    []models.Grado
	areas     []models.Area
	temas     []models.Tema
	articulos []models.Articulo
	usuarios  []models.Usuario

	// rows backs the generic import surface, keyed by table name
	rows map[string][]map[string]any

	nextID uint
	ops    []string
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		rows:   make(map[string][]map[string]any),
		nextID: 1,
	}
}

func (m *MockRepository) record(op string) {
	m.ops = append(m.ops, op)
}

func (m *MockRepository) allocID() uint {
	id := m.nextID
	m.nextID++
	return id
}

func (m *MockRepository) Grado() repositories.GradoRepository       { return &mockGradoRepo{m} }
func (m *MockRepository) Area() repositories.AreaRepository         { return &mockAreaRepo{m} }
func (m *MockRepository) Tema() repositories.TemaRepository         { return &mockTemaRepo{m} }
func (m *MockRepository) Articulo() repositories.ArticuloRepository { return &mockArticuloRepo{m} }
func (m *MockRepository) Usuario() repositories.UsuarioRepository   { return &mockUsuarioRepo{m} }
func (m *MockRepository) Tabla() repositories.TablaRepository       { return &mockTablaRepo{m} }
func (m *MockRepository) Stats() repositories.StatsRepository       { return &mockStatsRepo{m} }

func (m *MockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *MockRepository) Ping(ctx context.Context) error { return nil }
func (m *MockRepository) Close() error                   { return nil }

// ===== Grado =====

type mockGradoRepo struct{ m *MockRepository }

func (r *mockGradoRepo) Create(ctx context.Context, grado *models.Grado) error {
	if grado.ID == 0 {
		grado.ID = r.m.allocID()
	}
	r.m.grados = append(r.m.grados, *grado)
	r.m.record("create:grados")
	return nil
}

func (r *mockGradoRepo) GetByID(ctx context.Context, id uint) (*models.Grado, error) {
	for i := range r.m.grados {
		if r.m.grados[i].ID == id {
			grado := r.m.grados[i]
			return &grado, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *mockGradoRepo) List(ctx context.Context) ([]models.Grado, error) {
	out := make([]models.Grado, len(r.m.grados))
	copy(out, r.m.grados)
	return out, nil
}

func (r *mockGradoRepo) Update(ctx context.Context, grado *models.Grado) error {
	for i := range r.m.grados {
		if r.m.grados[i].ID == grado.ID {
			r.m.grados[i] = *grado
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *mockGradoRepo) Delete(ctx context.Context, id uint) error {
	for i := range r.m.grados {
		if r.m.grados[i].ID == id {
			r.m.grados = append(r.m.grados[:i], r.m.grados[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *mockGradoRepo) DeleteAll(ctx context.Context) error {
	r.m.grados = nil
	r.m.record("delete_all:grados")
	return nil
}

func (r *mockGradoRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.m.grados)), nil
}

// ===== Area =====

type mockAreaRepo struct{ m *MockRepository }

func (r *mockAreaRepo) Create(ctx context.Context, area *models.Area) error {
	if area.ID == 0 {
		area.ID = r.m.allocID()
	}
	r.m.areas = append(r.m.areas, *area)
	r.m.record("create:areas")
	return nil
}

func (r *mockAreaRepo) GetByID(ctx context.Context, id uint) (*models.Area, error) {
	for i := range r.m.areas {
		if r.m.areas[i].ID == id {
			area := r.m.areas[i]
			return &area, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *mockAreaRepo) List(ctx context.Context) ([]models.Area, error) {
	out := make([]models.Area, len(r.m.areas))
	copy(out, r.m.areas)
	return out, nil
}

func (r *mockAreaRepo) ListByGrado(ctx context.Context, gradoID uint) ([]models.Area, error) {
	var out []models.Area
	for _, area := range r.m.areas {
		if area.GradoID == gradoID {
			out = append(out, area)
		}
	}
	return out, nil
}

func (r *mockAreaRepo) Update(ctx context.Context, area *models.Area) error {
	for i := range r.m.areas {
		if r.m.areas[i].ID == area.ID {
			r.m.areas[i] = *area
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *mockAreaRepo) Delete(ctx context.Context, id uint) error {
	for i := range r.m.areas {
		if r.m.areas[i].ID == id {
			r.m.areas = append(r.m.areas[:i], r.m.areas[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *mockAreaRepo) DeleteAll(ctx context.Context) error {
	r.m.areas = nil
	r.m.record("delete_all:areas")
	return nil
}

func (r *mockAreaRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.m.areas)), nil
}

// ===== Tema =====

type mockTemaRepo struct{ m *MockRepository }

func (r *mockTemaRepo) Create(ctx context.Context, tema *models.Tema) error {
	if tema.ID == 0 {
		tema.ID = r.m.allocID()
	}
	r.m.temas = append(r.m.temas, *tema)
	r.m.record("create:temas")
	return nil
}

func (r *mockTemaRepo) GetByID(ctx context.Context, id uint) (*models.Tema, error) {
	for i := range r.m.temas {
		if r.m.temas[i].ID == id {
			tema := r.m.temas[i]
			return &tema, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *mockTemaRepo) List(ctx context.Context) ([]models.Tema, error) {
	out := make([]models.Tema, len(r.m.temas))
	copy(out, r.m.temas)
	return out, nil
}

func (r *mockTemaRepo) ListByArea(ctx context.Context, areaID uint) ([]models.Tema, error) {
	var out []models.Tema
	for _, tema := range r.m.temas {
		if tema.AreaID == areaID {
			out = append(out, tema)
		}
	}
	return out, nil
}

func (r *mockTemaRepo) Update(ctx context.Context, tema *models.Tema) error {
	for i := range r.m.temas {
		if r.m.temas[i].ID == tema.ID {
			r.m.temas[i] = *tema
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *mockTemaRepo) Delete(ctx context.Context, id uint) error {
	for i := range r.m.temas {
		if r.m.temas[i].ID == id {
			r.m.temas = append(r.m.temas[:i], r.m.temas[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *mockTemaRepo) DeleteAll(ctx context.Context) error {
	r.m.temas = nil
	r.m.record("delete_all:temas")
	return nil
}

func (r *mockTemaRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.m.temas)), nil
}

// ===== Articulo =====

type mockArticuloRepo struct{ m *MockRepository }

func (r *mockArticuloRepo) Create(ctx context.Context, articulo *models.Articulo) error {
	if articulo.ID == 0 {
		articulo.ID = r.m.allocID()
	}
	r.m.articulos = append(r.m.articulos, *articulo)
	r.m.record("create:articulos")
	return nil
}

func (r *mockArticuloRepo) GetByID(ctx context.Context, id uint) (*models.Articulo, error) {
	for i := range r.m.articulos {
		if r.m.articulos[i].ID == id {
			articulo := r.m.articulos[i]
			return &articulo, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *mockArticuloRepo) List(ctx context.Context, filter repositories.ArticuloFilter) ([]models.Articulo, error) {
	var out []models.Articulo
	for _, articulo := range r.m.articulos {
		if filter.GradoID != 0 && articulo.GradoID != filter.GradoID {
			continue
		}
		if filter.AreaID != 0 && articulo.AreaID != filter.AreaID {
			continue
		}
		if filter.TemaID != 0 && articulo.TemaID != filter.TemaID {
			continue
		}
		out = append(out, articulo)
	}
	return out, nil
}

func (r *mockArticuloRepo) Update(ctx context.Context, articulo *models.Articulo) error {
	for i := range r.m.articulos {
		if r.m.articulos[i].ID == articulo.ID {
			r.m.articulos[i] = *articulo
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *mockArticuloRepo) Delete(ctx context.Context, id uint) error {
	for i := range r.m.articulos {
		if r.m.articulos[i].ID == id {
			r.m.articulos = append(r.m.articulos[:i], r.m.articulos[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *mockArticuloRepo) DeleteAll(ctx context.Context) error {
	r.m.articulos = nil
	r.m.record("delete_all:articulos")
	return nil
}

func (r *mockArticuloRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.m.articulos)), nil
}

// ===== Usuario =====

type mockUsuarioRepo struct{ m *MockRepository }

func (r *mockUsuarioRepo) Create(ctx context.Context, usuario *models.Usuario) error {
	for _, existing := range r.m.usuarios {
		if existing.Email == usuario.Email {
			return repositories.ErrDuplicate
		}
	}
	if usuario.ID == 0 {
		usuario.ID = r.m.allocID()
	}
	r.m.usuarios = append(r.m.usuarios, *usuario)
	return nil
}

func (r *mockUsuarioRepo) GetByID(ctx context.Context, id uint) (*models.Usuario, error) {
	for i := range r.m.usuarios {
		if r.m.usuarios[i].ID == id {
			usuario := r.m.usuarios[i]
			return &usuario, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *mockUsuarioRepo) GetByEmail(ctx context.Context, email string) (*models.Usuario, error) {
	for i := range r.m.usuarios {
		if r.m.usuarios[i].Email == email {
			usuario := r.m.usuarios[i]
			return &usuario, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *mockUsuarioRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	for _, usuario := range r.m.usuarios {
		if usuario.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *mockUsuarioRepo) List(ctx context.Context) ([]models.Usuario, error) {
	out := make([]models.Usuario, len(r.m.usuarios))
	copy(out, r.m.usuarios)
	return out, nil
}

func (r *mockUsuarioRepo) Update(ctx context.Context, usuario *models.Usuario) error {
	for i := range r.m.usuarios {
		if r.m.usuarios[i].ID == usuario.ID {
			r.m.usuarios[i].Nombre = usuario.Nombre
			r.m.usuarios[i].Email = usuario.Email
			r.m.usuarios[i].Rol = usuario.Rol
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *mockUsuarioRepo) Delete(ctx context.Context, id uint) error {
	for i := range r.m.usuarios {
		if r.m.usuarios[i].ID == id {
			r.m.usuarios = append(r.m.usuarios[:i], r.m.usuarios[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *mockUsuarioRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.m.usuarios)), nil
}

// ===== Tabla (generic import surface) =====

type mockTablaRepo struct{ m *MockRepository }

func (r *mockTablaRepo) ListRows(ctx context.Context, table string) ([]map[string]any, error) {
	rows := r.m.rows[table]
	out := make([]map[string]any, len(rows))
	for i, row := range rows {
		out[i] = copyRow(row)
	}
	return out, nil
}

func (r *mockTablaRepo) InsertRow(ctx context.Context, table string, data map[string]any) (map[string]any, error) {
	row := copyRow(data)
	row["id"] = int64(r.m.allocID())
	r.m.rows[table] = append(r.m.rows[table], row)
	r.m.record("insert_row:" + table)
	return copyRow(row), nil
}

func (r *mockTablaRepo) UpdateRow(ctx context.Context, table string, id uint, data map[string]any) (map[string]any, error) {
	for _, row := range r.m.rows[table] {
		rowID, _ := row["id"].(int64)
		if uint(rowID) == id {
			for column, value := range data {
				row[column] = value
			}
			r.m.record("update_row:" + table)
			return copyRow(row), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *mockTablaRepo) RowExists(ctx context.Context, table string, id uint) (bool, error) {
	for _, row := range r.m.rows[table] {
		rowID, _ := row["id"].(int64)
		if uint(rowID) == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *mockTablaRepo) ResetSequence(ctx context.Context, table string) error {
	r.m.record("reset_sequence:" + table)
	return nil
}

func copyRow(row map[string]any) map[string]any {
	out := make(map[string]any, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

// ===== Stats =====

type mockStatsRepo struct{ m *MockRepository }

func (r *mockStatsRepo) Counts(ctx context.Context) (*models.StatsResponse, error) {
	return &models.StatsResponse{
		Grados:    int64(len(r.m.grados)),
		Areas:     int64(len(r.m.areas)),
		Temas:     int64(len(r.m.temas)),
		Articulos: int64(len(r.m.articulos)),
		Usuarios:  int64(len(r.m.usuarios)),
	}, nil
}

func (r *mockStatsRepo) Now(ctx context.Context) (time.Time, error) {
	return time.Now(), nil
}

var _ repositories.Repository = (*MockRepository)(nil)

// opsSince returns the mutations recorded after the given mark.
func (m *MockRepository) opsSince(mark int) []string {
	return m.ops[mark:]
}

func (m *MockRepository) String() string {
	return fmt.Sprintf("MockRepository{grados:%d areas:%d temas:%d articulos:%d usuarios:%d}",
		len(m.grados), len(m.areas), len(m.temas), len(m.articulos), len(m.usuarios))
}

package console

import (
	"context"
	"time"

	"github.com/jhoicas/canastillas-console/internal/application/dto"
	"github.com/jhoicas/canastillas-console/internal/application/ports"
	"github.com/jhoicas/canastillas-console/internal/domain/entity"
)

// UsersScreen pantalla de usuarios. Recarga de inmediato tras cada mutación.
// La contraseña nunca se precarga y, en blanco, no viaja en la actualización.
type UsersScreen struct {
	*collectionScreen[entity.User, dto.UserFilters]
	*Workflow[dto.UserForm]
}

// NewUsersScreen construye la pantalla sobre el puerto de usuarios.
func NewUsersScreen(api ports.UserAPI, opts Options) *UsersScreen {
	opts = opts.withDefaults()
	s := &UsersScreen{}
	s.collectionScreen = newCollectionScreen(
		ScreenUsers,
		"No se pudieron cargar los usuarios. Verifica la conexión con el servidor.",
		opts,
		dto.UserFilters{Role: dto.AllFilter, Status: dto.AllFilter},
		api.ListUsers,
		func(items []entity.User, f dto.UserFilters, now time.Time) dto.View {
			return RenderUsers(DeriveUserView(items, f), now.Location())
		},
	)
	s.Workflow = newWorkflow(workflowSpec[dto.UserForm]{
		screen:       ScreenUsers,
		createTitle:  "Nuevo Usuario",
		createSubmit: "Registrar Usuario",
		editTitle:    "Editar Usuario",
		editSubmit:   "Actualizar Usuario",
		createdMsg:   "Usuario registrado con éxito",
		updatedMsg:   "Usuario actualizado con éxito",
		deletedMsg:   func(string) string { return "Usuario eliminado con éxito" },
		submitErr:    "Error al procesar el usuario",
		loadEditErr:  "Error al cargar el usuario para editar",
		deleteErr:    "Error al eliminar el usuario",
		blank: func() dto.UserForm {
			return dto.UserForm{Role: entity.RoleOperator, Status: entity.UserStatusActive}
		},
		checkID: func(id string) error { _, err := parseID(id); return err },
		loadEdit: func(ctx context.Context, id string) (dto.UserForm, error) {
			n, _ := parseID(id)
			u, err := api.GetUser(ctx, n)
			if err != nil {
				return dto.UserForm{}, err
			}
			return dto.UserFormFrom(*u), nil
		},
		validate: func(f dto.UserForm, editing bool) error { return f.Validate(editing) },
		create: func(ctx context.Context, f dto.UserForm) (string, error) {
			return api.CreateUser(ctx, f.Payload(false))
		},
		update: func(ctx context.Context, id string, f dto.UserForm) (string, error) {
			n, _ := parseID(id)
			return api.UpdateUser(ctx, n, f.Payload(true))
		},
		remove: func(ctx context.Context, id string) (string, error) {
			n, _ := parseID(id)
			return api.DeleteUser(ctx, n)
		},
		refresh: s.Refresh,
	}, opts)
	return s
}

// State estado completo de la pantalla.
func (s *UsersScreen) State() dto.ScreenState[dto.UserFilters, dto.UserForm] {
	return screenState(s.collectionScreen, s.Workflow)
}

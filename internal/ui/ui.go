package ui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/packdex/internal/catalog"
	"github.com/desertthunder/packdex/internal/formatter"
	"github.com/desertthunder/packdex/internal/models"
	"github.com/desertthunder/packdex/internal/services"
	"github.com/desertthunder/packdex/internal/shared"
	"github.com/desertthunder/packdex/internal/tasks"
)

// Mode selects which front end the TUI presents.
type Mode int

const (
	AdminMode   Mode = iota // AdminMode is the back-office console
	CatalogMode             // CatalogMode is the customer-facing catalog
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	BrowseView        ViewState = iota // BrowseView is the search bar + card grid
	CoverEditView                      // CoverEditView edits one pack's manual cover
	ConfirmClearView                   // ConfirmClearView confirms clearing a manual cover
	ConfirmDeleteView                  // ConfirmDeleteView confirms a pack deletion
	BulkEditView                       // BulkEditView is the multi-line bulk cover editor
)

const (
	copyRevertDelay = 2 * time.Second
	toastDelay      = 3 * time.Second
)

var openBrowser = shared.OpenBrowser

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	mode       Mode
	view       ViewState
	svc        services.CatalogService
	controller *catalog.Controller
	poller     *tasks.StatusPoller
	covers     *tasks.CoverEngine
	logger     *log.Logger

	whatsAppNumber string
	loginURL       string
	fullRefresh    int
	quickRefresh   int

	statusCh   chan tasks.StatusUpdate
	statusText string
	connected  bool
	loadedOnce bool

	queryInput   textinput.Model
	excludeInput textinput.Model
	minInput     textinput.Model
	maxInput     textinput.Model
	focusIdx     int
	inputFocused bool

	coverInput textinput.Model
	editingID  string
	pendingID  string
	bulkInput  textarea.Model

	cursor      int
	windowStart int
	countText   string
	gridError   string
	alertText   string
	searching   bool
	refreshing  bool

	copiedID     string
	toastVisible bool

	width  int
	height int
	help   help.Model
	keys   keyMap
}

// ModelOpts contains the dependencies for building a TUI [Model].
type ModelOpts struct {
	Mode       Mode
	Service    services.CatalogService
	Controller *catalog.Controller
	Poller     *tasks.StatusPoller
	Covers     *tasks.CoverEngine
	Config     *shared.Config
	Logger     *log.Logger
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts ModelOpts) *Model {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	query := textinput.New()
	query.Placeholder = "Buscar juego..."
	query.Width = 30

	exclude := textinput.New()
	exclude.Placeholder = "Excluir..."
	exclude.Width = 20

	minPrice := textinput.New()
	minPrice.Placeholder = "Precio mín"
	minPrice.Width = 10

	maxPrice := textinput.New()
	maxPrice.Placeholder = "Precio máx"
	maxPrice.Width = 10

	cover := textinput.New()
	cover.Placeholder = "URL de portada"
	cover.Width = 60

	bulk := textarea.New()
	bulk.Placeholder = "ID URL\nID URL\n..."
	bulk.SetWidth(70)
	bulk.SetHeight(10)

	return &Model{
		ctx:            ctx,
		mode:           opts.Mode,
		view:           BrowseView,
		svc:            opts.Service,
		controller:     opts.Controller,
		poller:         opts.Poller,
		covers:         opts.Covers,
		logger:         opts.Logger,
		whatsAppNumber: opts.Config.Catalog.WhatsAppNumber,
		loginURL:       opts.Config.LoginURL(),
		fullRefresh:    opts.Config.Catalog.FullRefresh,
		quickRefresh:   opts.Config.Catalog.QuickRefresh,
		statusCh:       make(chan tasks.StatusUpdate, 1),
		statusText:     "Esperando Login...",
		queryInput:     query,
		excludeInput:   exclude,
		minInput:       minPrice,
		maxInput:       maxPrice,
		coverInput:     cover,
		bulkInput:      bulk,
		help:           help.New(),
		keys:           newKeyMap(),
	}
}

type statusMsg tasks.StatusUpdate

type searchDoneMsg struct {
	fresh      bool
	superseded bool
	err        error
}

type loadAllDoneMsg struct{ err error }

type refreshDoneMsg struct {
	found    int
	unauthed bool
	err      error
}

type mutationDoneMsg struct {
	label string
	err   error
}

type bulkDoneMsg struct {
	result *tasks.BulkCoverResult
	err    error
}

type copyDoneMsg struct {
	id  string
	err error
}

type copyRevertMsg struct{ id string }

type toastHideMsg struct{}

type coverProbeMsg struct {
	id  string
	err error
}

// Init starts the status poller for the admin console, or loads the full
// catalog immediately for the customer catalog.
func (m *Model) Init() tea.Cmd {
	if m.mode == AdminMode && m.poller != nil {
		go m.poller.Run(m.ctx, m.statusCh)
		return m.waitForStatus()
	}
	m.searching = true
	return m.loadAll()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case BrowseView:
			return m.handleBrowseKeys(msg)
		case CoverEditView:
			return m.handleCoverEditKeys(msg)
		case ConfirmClearView, ConfirmDeleteView:
			return m.handleConfirmKeys(msg)
		case BulkEditView:
			return m.handleBulkEditKeys(msg)
		}

	case statusMsg:
		return m.handleStatus(tasks.StatusUpdate(msg))

	case loadAllDoneMsg:
		m.searching = false
		if msg.err != nil {
			if m.mode == CatalogMode {
				m.gridError = "No se pudo cargar el catálogo. Intenta recargar la página."
			} else {
				m.logger.Error("catalog load failed", "err", msg.err)
			}
			return m, nil
		}
		m.gridError = ""
		m.scrollTo(0)
		m.windowStart = 0
		m.refreshCountText()
		return m, m.probeCovers()

	case searchDoneMsg:
		m.searching = false
		if msg.superseded {
			return m, nil
		}
		if msg.err != nil {
			// Customers get the friendly copy; raw backend messages are
			// for the admin console only.
			if m.mode == CatalogMode {
				m.gridError = "Error al buscar. Intenta de nuevo."
			} else {
				m.gridError = msg.err.Error()
			}
			m.countText = "Error en la búsqueda"
			return m, nil
		}
		m.gridError = ""
		if msg.fresh {
			m.scrollTo(0)
			m.windowStart = 0
		}
		m.refreshCountText()
		return m, m.probeCovers()

	case refreshDoneMsg:
		m.refreshing = false
		if msg.unauthed {
			// 401: navigate to the login page, no further catalog load.
			if err := openBrowser(m.loginURL); err != nil {
				m.logger.Error("failed to open login page", "err", err)
			}
			return m, nil
		}
		if msg.err != nil {
			m.gridError = msg.err.Error()
			return m, nil
		}
		m.countText = fmt.Sprintf("✅ Lista renovada: %d packs encontrados", msg.found)
		m.searching = true
		return m, m.loadAll()

	case mutationDoneMsg:
		if msg.err != nil {
			m.alertText = fmt.Sprintf("%s: %v", msg.label, msg.err)
			return m, nil
		}
		m.alertText = ""
		// Reconcile with backend truth via a fresh search.
		return m, m.repeatSearch()

	case bulkDoneMsg:
		if msg.err != nil {
			m.alertText = fmt.Sprintf("Error guardando masivo: %v", msg.err)
			return m, nil
		}
		m.alertText = fmt.Sprintf("Actualizados %d packs correctamente.", msg.result.Updated)
		m.view = BrowseView
		return m, m.repeatSearch()

	case copyDoneMsg:
		if msg.err != nil {
			m.alertText = fmt.Sprintf("Error al copiar: %v", msg.err)
			return m, nil
		}
		// Confirmation shows only after the write completed; two
		// independent timers revert the label and the toast.
		m.copiedID = msg.id
		m.toastVisible = true
		return m, tea.Batch(
			tea.Tick(copyRevertDelay, func(time.Time) tea.Msg { return copyRevertMsg{id: msg.id} }),
			tea.Tick(toastDelay, func(time.Time) tea.Msg { return toastHideMsg{} }),
		)

	case copyRevertMsg:
		if m.copiedID == msg.id {
			m.copiedID = ""
		}
		return m, nil

	case toastHideMsg:
		m.toastVisible = false
		return m, nil

	case coverProbeMsg:
		if msg.err != nil {
			m.controller.Store().MarkCoverFailed(msg.id)
		}
		return m, nil
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case CoverEditView:
		return m.renderCoverEdit()
	case ConfirmClearView:
		return m.renderConfirm(fmt.Sprintf("¿Borrar portada manual y volver a la automática? (Pack %s)", m.pendingID))
	case ConfirmDeleteView:
		return m.renderConfirm(fmt.Sprintf("¿Estás seguro de ELIMINAR el pack %s? Esta acción no se puede deshacer.", m.pendingID))
	default:
		return m.renderBrowse()
	}
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inputFocused {
		switch msg.String() {
		case "enter":
			return m, m.startSearch()
		case "esc":
			m.blurInputs()
			return m, nil
		case "tab":
			return m, m.cycleFocus(1)
		case "shift+tab":
			return m, m.cycleFocus(-1)
		case "ctrl+c":
			return m, tea.Quit
		}
		return m.updateInputs(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "/":
		return m, m.focusInputs()
	case "enter":
		return m, m.startSearch()
	case "x":
		m.clearSearch()
		return m, m.probeCovers()
	case "up", "k":
		if m.cursor > 0 {
			m.scrollTo(m.cursor - 1)
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.controller.Store().Rendered())-1 {
			m.scrollTo(m.cursor + 1)
		}
		return m, nil
	case "m":
		// Load more reveals the next page of the already-fetched set;
		// no network call happens here.
		if m.controller.Store().Advance() {
			m.refreshCountText()
			return m, m.probeCovers()
		}
		return m, nil
	case "c":
		if pack, ok := m.selectedPack(); ok {
			return m, m.copyPack(pack)
		}
		return m, nil
	case "w":
		if m.mode == CatalogMode {
			if pack, ok := m.selectedPack(); ok {
				link := formatter.BuildWhatsAppLink(m.whatsAppNumber, pack.ID)
				if err := openBrowser(link); err != nil {
					m.alertText = fmt.Sprintf("Error abriendo WhatsApp: %v", err)
				}
			}
		}
		return m, nil
	case "e":
		if m.mode == AdminMode {
			if pack, ok := m.selectedPack(); ok {
				m.openCoverEdit(pack)
				return m, m.coverInput.Focus()
			}
		}
		return m, nil
	case "d":
		if m.mode == AdminMode {
			if pack, ok := m.selectedPack(); ok {
				m.pendingID = pack.ID
				m.view = ConfirmDeleteView
			}
		}
		return m, nil
	case "b":
		if m.mode == AdminMode {
			m.view = BulkEditView
			return m, m.bulkInput.Focus()
		}
		return m, nil
	case "r":
		if m.mode == AdminMode {
			return m, m.startRefresh(m.fullRefresh)
		}
		return m, nil
	case "R":
		if m.mode == AdminMode {
			return m, m.startRefresh(m.quickRefresh)
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleCoverEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = BrowseView
		m.coverInput.Blur()
		m.editingID = ""
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		url := strings.TrimSpace(m.coverInput.Value())
		id := m.editingID
		m.view = BrowseView
		m.coverInput.Blur()
		m.editingID = ""
		return m, m.setCover(id, &url)
	case "ctrl+d":
		// Clearing the manual cover is destructive; confirm first.
		m.pendingID = m.editingID
		m.view = ConfirmClearView
		m.coverInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.coverInput, cmd = m.coverInput.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		id := m.pendingID
		view := m.view
		m.pendingID = ""
		m.view = BrowseView
		if view == ConfirmDeleteView {
			return m, m.deletePack(id)
		}
		return m, m.setCover(id, nil)
	case "n", "esc", "q":
		m.pendingID = ""
		m.view = BrowseView
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleBulkEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = BrowseView
		m.bulkInput.Blur()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+s":
		return m, m.submitBulk(m.bulkInput.Value())
	}

	var cmd tea.Cmd
	m.bulkInput, cmd = m.bulkInput.Update(msg)
	return m, cmd
}

func (m *Model) handleStatus(update tasks.StatusUpdate) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.waitForStatus()}

	m.connected = update.Connected()
	switch {
	case update.Err != nil:
		m.statusText = "Servidor Desconectado"
	case !m.connected:
		m.statusText = "Esperando Login..."
	default:
		cacheInfo := ""
		if update.Status.CachedPacks > 0 {
			cacheInfo = fmt.Sprintf(" (%d packs)", update.Status.CachedPacks)
		}
		m.statusText = "Conectado" + cacheInfo

		// Exactly one initial catalog load, the first time a non-empty
		// cache is observed while the local catalog is still empty.
		if update.Status.CachedPacks > 0 && m.controller.Store().Empty() && !m.loadedOnce {
			m.loadedOnce = true
			m.searching = true
			cmds = append(cmds, m.loadAll())
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) waitForStatus() tea.Cmd {
	return func() tea.Msg {
		update, ok := <-m.statusCh
		if !ok {
			return nil
		}
		return statusMsg(update)
	}
}

func (m *Model) loadAll() tea.Cmd {
	return func() tea.Msg {
		return loadAllDoneMsg{err: m.controller.LoadAll(m.ctx)}
	}
}

func (m *Model) startSearch() tea.Cmd {
	// Disabled while in flight; searchDoneMsg re-enables on every path.
	if m.searching {
		return nil
	}
	m.searching = true
	m.blurInputs()

	query := m.controller.BuildQuery(
		m.queryInput.Value(),
		m.excludeInput.Value(),
		m.minInput.Value(),
		m.maxInput.Value(),
	)

	return func() tea.Msg {
		fresh, err := m.controller.Search(m.ctx, query)
		if errors.Is(err, shared.ErrSuperseded) {
			return searchDoneMsg{superseded: true}
		}
		return searchDoneMsg{fresh: fresh, err: err}
	}
}

func (m *Model) repeatSearch() tea.Cmd {
	m.searching = true
	return func() tea.Msg {
		err := m.controller.Repeat(m.ctx)
		if errors.Is(err, shared.ErrSuperseded) {
			return searchDoneMsg{superseded: true}
		}
		return searchDoneMsg{err: err}
	}
}

func (m *Model) startRefresh(count int) tea.Cmd {
	if m.refreshing {
		return nil
	}
	m.refreshing = true
	m.countText = "Renovando lista..."

	return func() tea.Msg {
		found, err := m.svc.Refresh(m.ctx, count)
		if errors.Is(err, shared.ErrNotAuthenticated) {
			return refreshDoneMsg{unauthed: true}
		}
		if err != nil {
			return refreshDoneMsg{err: err}
		}
		return refreshDoneMsg{found: found}
	}
}

func (m *Model) setCover(id string, url *string) tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{label: "Error guardando portada", err: m.svc.SetCover(m.ctx, id, url)}
	}
}

func (m *Model) deletePack(id string) tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{label: "Error al eliminar", err: m.svc.DeletePack(m.ctx, id)}
	}
}

func (m *Model) submitBulk(text string) tea.Cmd {
	// Local validation happens inside the engine; a block with zero
	// valid lines never reaches the backend.
	return func() tea.Msg {
		result, err := m.covers.BulkSetCovers(m.ctx, text)
		return bulkDoneMsg{result: result, err: err}
	}
}

func (m *Model) copyPack(pack models.Pack) tea.Cmd {
	return func() tea.Msg {
		err := shared.CopyToClipboard(formatter.CopyPayload(pack))
		return copyDoneMsg{id: pack.ID, err: err}
	}
}

// probeCovers checks the covers on the newly revealed page and
// reclassifies unreachable ones onto the fallback pattern.
func (m *Model) probeCovers() tea.Cmd {
	packs := m.controller.Store().PageSlice()
	var cmds []tea.Cmd
	for _, p := range packs {
		if !p.HasCover() || strings.HasPrefix(p.CoverURL, "data:") {
			continue
		}
		pack := p
		cmds = append(cmds, func() tea.Msg {
			err := formatter.ProbeCover(m.ctx, &http.Client{Timeout: 10 * time.Second}, pack.CoverURL)
			return coverProbeMsg{id: pack.ID, err: err}
		})
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) selectedPack() (models.Pack, bool) {
	rendered := m.controller.Store().Rendered()
	if m.cursor < 0 || m.cursor >= len(rendered) {
		return models.Pack{}, false
	}
	return rendered[m.cursor], true
}

func (m *Model) openCoverEdit(pack models.Pack) {
	m.editingID = pack.ID
	m.view = CoverEditView

	// The default placeholder cover presents as empty.
	current := pack.CoverURL
	if strings.Contains(current, "default") {
		current = ""
	}
	m.coverInput.SetValue(current)
}

func (m *Model) clearSearch() {
	m.queryInput.SetValue("")
	m.excludeInput.SetValue("")
	m.minInput.SetValue("")
	m.maxInput.SetValue("")
	m.gridError = ""
	// Re-render the unfiltered set without a network call.
	m.controller.Store().Apply(m.controller.Store().All(), "", "")
	m.scrollTo(0)
	m.windowStart = 0
	m.refreshCountText()
}

func (m *Model) refreshCountText() {
	store := m.controller.Store()
	_, query, exclude := store.Current()
	if m.mode == AdminMode {
		m.countText = formatter.AdminCountText(store.Len(), query, exclude)
	} else {
		m.countText = formatter.CatalogCountText(store.Len(), query, exclude)
	}
}

func (m *Model) focusInputs() tea.Cmd {
	m.inputFocused = true
	m.focusIdx = 0
	return m.queryInput.Focus()
}

func (m *Model) blurInputs() {
	m.inputFocused = false
	m.queryInput.Blur()
	m.excludeInput.Blur()
	m.minInput.Blur()
	m.maxInput.Blur()
}

func (m *Model) cycleFocus(dir int) tea.Cmd {
	inputs := []*textinput.Model{&m.queryInput, &m.excludeInput, &m.minInput, &m.maxInput}
	inputs[m.focusIdx].Blur()
	m.focusIdx = (m.focusIdx + dir + len(inputs)) % len(inputs)
	return inputs[m.focusIdx].Focus()
}

func (m *Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.queryInput, cmd = m.queryInput.Update(msg)
	cmds = append(cmds, cmd)
	m.excludeInput, cmd = m.excludeInput.Update(msg)
	cmds = append(cmds, cmd)
	m.minInput, cmd = m.minInput.Update(msg)
	cmds = append(cmds, cmd)
	m.maxInput, cmd = m.maxInput.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) renderBrowse() string {
	var b strings.Builder

	if m.mode == AdminMode {
		title := "Packdex Admin"
		dot := "○"
		if m.connected {
			dot = styles.ok.Render("●")
		}
		b.WriteString(styles.title.Render(title) + "\n")
		b.WriteString(fmt.Sprintf("%s %s\n\n", dot, m.statusText))
	} else {
		b.WriteString(styles.title.Render("Catálogo de Packs") + "\n\n")
	}

	searchLabel := "Buscar"
	if m.searching {
		searchLabel = "⌛ Buscando..."
	}
	refreshLabel := ""
	if m.mode == AdminMode {
		refreshLabel = "  🔄 r/R renovar"
		if m.refreshing {
			refreshLabel = "  ⌛ Renovando..."
		}
	}

	b.WriteString(fmt.Sprintf(
		"%s  %s  %s  %s  [%s]%s\n\n",
		m.queryInput.View(),
		m.excludeInput.View(),
		m.minInput.View(),
		m.maxInput.View(),
		searchLabel,
		refreshLabel,
	))

	if m.countText != "" {
		b.WriteString(styles.warn.Render(m.countText) + "\n\n")
	}

	if m.view == BulkEditView {
		b.WriteString(styles.title.Render("Portadas masivas (ID URL por línea)") + "\n")
		b.WriteString(m.bulkInput.View() + "\n")
		b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.submit, m.keys.back}) + "\n")
	} else {
		b.WriteString(m.renderGrid() + "\n")
	}

	if m.alertText != "" {
		b.WriteString("\n" + styles.err.Render(m.alertText) + "\n")
	}

	if m.toastVisible {
		b.WriteString("\n" + toastStyle.Render("✅ Copiado al portapapeles") + "\n")
	}

	b.WriteString("\n" + m.help.ShortHelpView(m.browseHelpKeys()))
	return b.String()
}

func (m *Model) renderCoverEdit() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Editar portada") + "\n")
	b.WriteString(fmt.Sprintf("Pack ID: %s\n\n", m.editingID))
	b.WriteString(m.coverInput.View() + "\n\n")
	b.WriteString(styles.help.Render("enter guardar • ctrl+d borrar portada manual • esc volver"))
	return b.String()
}

func (m *Model) renderConfirm(prompt string) string {
	var b strings.Builder
	b.WriteString(styles.warn.Render(prompt) + "\n\n")
	b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no}))
	return b.String()
}

func (m *Model) browseHelpKeys() []key.Binding {
	keys := []key.Binding{m.keys.focus, m.keys.loadMore, m.keys.copyText}
	if m.mode == CatalogMode {
		keys = append(keys, m.keys.share)
	} else {
		keys = append(keys, m.keys.edit, m.keys.delete, m.keys.bulk, m.keys.refresh)
	}
	return append(keys, m.keys.quit)
}

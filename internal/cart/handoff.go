package cart

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/sessions"

	"kplat_back_end/internal/models"
)

const (
	handoffSessionName = "kplat_checkout"
	handoffKey         = "handoff"
	draftKey           = "order_draft"
	formKey            = "order_form"
)

// HandoffStore : magasin transitoire du hand-off panier → checkout.
// Cookie de session (MaxAge 0) : survit à la navigation, pas au redémarrage
// du navigateur. Le snapshot est écrit une fois au départ vers le checkout
// et consommé une seule fois à son initialisation.
type HandoffStore struct {
	store sessions.Store
}

func NewHandoffStore(secret []byte) *HandoffStore {
	cookieStore := sessions.NewCookieStore(secret)
	cookieStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   0, // cookie de session
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &HandoffStore{store: cookieStore}
}

func (h *HandoffStore) SaveHandoff(w http.ResponseWriter, r *http.Request, snap models.CartSnapshot) error {
	sess, _ := h.store.Get(r, handoffSessionName)
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	sess.Values[handoffKey] = string(data)
	return sess.Save(r, w)
}

// PopHandoff lit le snapshot et l'efface immédiatement : une deuxième
// lecture (retour arrière vers le checkout) est traitée comme absente.
// Un enregistrement corrompu est également traité comme absent.
func (h *HandoffStore) PopHandoff(w http.ResponseWriter, r *http.Request) (models.CartSnapshot, bool) {
	sess, _ := h.store.Get(r, handoffSessionName)
	raw, ok := sess.Values[handoffKey].(string)
	if ok {
		delete(sess.Values, handoffKey)
		_ = sess.Save(r, w)
	}
	if !ok || raw == "" {
		return models.CartSnapshot{}, false
	}

	var snap models.CartSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return models.CartSnapshot{}, false
	}
	return snap, true
}

// SaveDraft conserve la copie de travail du checkout une fois le hand-off
// consommé. C'est cette copie, pas le panier vivant, que le submit relit.
func (h *HandoffStore) SaveDraft(w http.ResponseWriter, r *http.Request, snap models.CartSnapshot) error {
	sess, _ := h.store.Get(r, handoffSessionName)
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	sess.Values[draftKey] = string(data)
	return sess.Save(r, w)
}

func (h *HandoffStore) Draft(r *http.Request) (models.CartSnapshot, bool) {
	sess, _ := h.store.Get(r, handoffSessionName)
	raw, ok := sess.Values[draftKey].(string)
	if !ok || raw == "" {
		return models.CartSnapshot{}, false
	}
	var snap models.CartSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return models.CartSnapshot{}, false
	}
	return snap, true
}

func (h *HandoffStore) ClearDraft(w http.ResponseWriter, r *http.Request) error {
	sess, _ := h.store.Get(r, handoffSessionName)
	delete(sess.Values, draftKey)
	delete(sess.Values, formKey)
	return sess.Save(r, w)
}

// SaveFormDraft conserve le formulaire de checkout en cours de saisie,
// en JSON brut pour ne pas coupler cette session au type du formulaire.
func (h *HandoffStore) SaveFormDraft(w http.ResponseWriter, r *http.Request, formJSON string) error {
	sess, _ := h.store.Get(r, handoffSessionName)
	sess.Values[formKey] = formJSON
	return sess.Save(r, w)
}

func (h *HandoffStore) FormDraft(r *http.Request) (string, bool) {
	sess, _ := h.store.Get(r, handoffSessionName)
	raw, ok := sess.Values[formKey].(string)
	if !ok || raw == "" {
		return "", false
	}
	return raw, true
}

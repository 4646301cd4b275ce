package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"craftvival/internal/app/action"
	"craftvival/internal/app/observe"
	"craftvival/internal/app/ports"
	"craftvival/internal/app/replay"
	"craftvival/internal/domain/survival"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/google/uuid"
)

const playerIDHeader = "X-Player-ID"
const idempotencyHeader = "Idempotency-Key"

type Handler struct {
	ObserveUC observe.UseCase
	ActionUC  action.UseCase
	ReplayUC  replay.UseCase
	Book      *survival.Book
	KPI       kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	player := s.Group("/api/player")
	player.POST("/observe", h.observe)
	player.POST("/action", h.action)
	player.GET("/replay", h.replay)

	s.GET("/api/recipes", h.recipes)
	s.GET("/ops/kpi", h.kpi)
}

type observeRequest struct {
	PlayerID string `json:"player_id"`
}

type actionRequest struct {
	PlayerID       string       `json:"player_id"`
	IdempotencyKey string       `json:"idempotency_key"`
	Intent         actionIntent `json:"intent"`
}

type actionIntent struct {
	Type    string `json:"type"`
	Item    string `json:"item,omitempty"`
	Count   int    `json:"count,omitempty"`
	Tool    string `json:"tool,omitempty"`
	Object  string `json:"object,omitempty"`
	Partial bool   `json:"partial,omitempty"`
	InRange bool   `json:"in_range,omitempty"`
}

type recipesResponse struct {
	Recipes []survival.Recipe `json:"recipes"`
}

var ErrMissingPlayerID = errors.New("missing player id")

func (h Handler) observe(c context.Context, ctx *app.RequestContext) {
	var body observeRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	playerID, err := resolvePlayerID(ctx, body.PlayerID)
	if err != nil {
		writeError(c, ctx, err)
		return
	}

	resp, err := h.ObserveUC.Execute(c, observe.Request{PlayerID: playerID})
	if err != nil {
		writeError(c, ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) action(c context.Context, ctx *app.RequestContext) {
	var body actionRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	playerID, err := resolvePlayerID(ctx, body.PlayerID)
	if err != nil {
		writeError(c, ctx, err)
		return
	}
	key := strings.TrimSpace(body.IdempotencyKey)
	if key == "" {
		key = strings.TrimSpace(string(ctx.GetHeader(idempotencyHeader)))
	}
	if key == "" {
		// Without a client key the request cannot be retried safely.
		key = uuid.NewString()
	}

	resp, err := h.ActionUC.Execute(c, action.Request{
		PlayerID:       playerID,
		IdempotencyKey: key,
		Intent: action.IntentRequest{
			Type:    survival.IntentKind(body.Intent.Type),
			Item:    body.Intent.Item,
			Count:   body.Intent.Count,
			Tool:    body.Intent.Tool,
			Object:  body.Intent.Object,
			Partial: body.Intent.Partial,
			InRange: body.Intent.InRange,
		},
	})
	if err != nil {
		if writeActionRejectedFromErr(c, ctx, err) {
			return
		}
		writeError(c, ctx, err)
		return
	}
	ctx.Response.Header.Set(idempotencyHeader, key)
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) replay(c context.Context, ctx *app.RequestContext) {
	playerID, err := resolvePlayerID(ctx, string(ctx.Query("player_id")))
	if err != nil {
		writeError(c, ctx, err)
		return
	}
	limit, err := queryInt(ctx, "limit")
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", "limit must be an integer")
		return
	}
	occurredFrom, err := queryInt(ctx, "occurred_from")
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", "occurred_from must be a unix timestamp")
		return
	}
	occurredTo, err := queryInt(ctx, "occurred_to")
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", "occurred_to must be a unix timestamp")
		return
	}
	resp, err := h.ReplayUC.Execute(c, replay.Request{
		PlayerID:     playerID,
		Limit:        int(limit),
		OccurredFrom: occurredFrom,
		OccurredTo:   occurredTo,
	})
	if err != nil {
		writeError(c, ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) recipes(_ context.Context, ctx *app.RequestContext) {
	recipes := h.Book.Recipes()
	if recipes == nil {
		recipes = []survival.Recipe{}
	}
	ctx.JSON(consts.StatusOK, recipesResponse{Recipes: recipes})
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func resolvePlayerID(ctx *app.RequestContext, fallback string) (string, error) {
	if id := strings.TrimSpace(string(ctx.GetHeader(playerIDHeader))); id != "" {
		return id, nil
	}
	if id := strings.TrimSpace(fallback); id != "" {
		return id, nil
	}
	return "", ErrMissingPlayerID
}

func queryInt(ctx *app.RequestContext, key string) (int64, error) {
	raw := strings.TrimSpace(string(ctx.Query(key)))
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(c context.Context, ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingPlayerID):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_player_id", err.Error())
	case errors.Is(err, action.ErrInvalidIntent),
		errors.Is(err, survival.ErrInvalidQuantity),
		errors.Is(err, survival.ErrUnknownItem):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_intent", err.Error())
	case errors.Is(err, action.ErrInvalidRequest),
		errors.Is(err, observe.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, survival.ErrInventoryFull):
		writeErrorBody(ctx, consts.StatusConflict, "INVENTORY_FULL", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		hlog.CtxErrorf(c, "unhandled request error: %v", err)
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

func writeActionRejectedFromErr(c context.Context, ctx *app.RequestContext, err error) bool {
	status, code, blockedBy, details := consts.StatusConflict, "", "REQUIREMENT_NOT_MET", map[string]any{}

	var (
		craftErr   *survival.CraftError
		missingErr *survival.ItemMissingError
		fullErr    *survival.InventoryFullError
		toolErr    *survival.ToolRequiredError
	)
	switch {
	case errors.As(err, &craftErr):
		details["output"] = craftErr.Output.String()
		switch {
		case errors.Is(err, survival.ErrRecipeNotFound):
			hlog.CtxErrorf(c, "craft requested for output without recipe: %v", err)
			status, code = consts.StatusUnprocessableEntity, "RECIPE_NOT_FOUND"
		case errors.Is(err, survival.ErrNoOutputSpace):
			code, blockedBy = "NO_OUTPUT_SPACE", "INVENTORY_FULL"
		default:
			code = "INGREDIENTS_MISSING"
			details["missing"] = craftErr.Missing
		}
	case errors.As(err, &missingErr):
		code = "ITEM_MISSING"
		details["item"] = missingErr.Item.String()
		details["requested"] = missingErr.Requested
		details["held"] = missingErr.Held
		details["present"] = missingErr.Present
	case errors.As(err, &fullErr):
		code, blockedBy = "INVENTORY_FULL", "INVENTORY_FULL"
		details["overflow"] = fullErr.Overflow
	case errors.As(err, &toolErr):
		code = "TOOL_REQUIRED"
		details["tool"] = toolErr.Tool.String()
		details["held"] = toolErr.Held.String()
	case errors.Is(err, survival.ErrNothingEquipped):
		code = "NOTHING_EQUIPPED"
	case errors.Is(err, action.ErrTargetOutOfRange):
		code, blockedBy = "TARGET_OUT_OF_RANGE", "OUT_OF_RANGE"
		details["in_range"] = false
	case errors.Is(err, action.ErrNotPickupable):
		code = "NOT_PICKUPABLE"
	case errors.Is(err, action.ErrNotHarvestable):
		code = "NOT_HARVESTABLE"
	case errors.Is(err, survival.ErrNotATool):
		status, code = consts.StatusBadRequest, "NOT_A_TOOL"
	case errors.Is(err, action.ErrInvalidIntent),
		errors.Is(err, survival.ErrInvalidQuantity),
		errors.Is(err, survival.ErrUnknownItem):
		status, code = consts.StatusBadRequest, "invalid_intent"
	case errors.Is(err, action.ErrInvalidRequest):
		status, code = consts.StatusBadRequest, "bad_request"
	default:
		return false
	}
	if len(details) == 0 {
		details = nil
	}
	hlog.CtxWarnf(c, "action rejected: code=%s err=%v", code, err)
	writeActionRejected(ctx, status, code, err.Error(), false, []string{blockedBy}, details)
	return true
}

func writeActionRejected(ctx *app.RequestContext, status int, code, message string, retryable bool, blockedBy []string, details map[string]any) {
	ctx.JSON(status, map[string]any{
		"result_code": "REJECTED",
		"error": map[string]any{
			"code":       code,
			"message":    message,
			"retryable":  retryable,
			"blocked_by": blockedBy,
			"details":    details,
		},
	})
}

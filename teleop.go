package sitstay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/golang/geo/r3"
	"github.com/gorilla/websocket"
	"go.viam.com/rdk/spatialmath"
	rdkutils "go.viam.com/rdk/utils"
	"google.golang.org/protobuf/encoding/protojson"

	quadpose "github.com/biotinker/sitstay/quad_pose"
)

// AttitudeCommand is one teleoperation frame. Angles arrive in degrees
// because that is what gamepad and slider UIs emit.
type AttitudeCommand struct {
	YawDeg   float64 `mapstructure:"yaw_deg"`
	PitchDeg float64 `mapstructure:"pitch_deg"`
	RollDeg  float64 `mapstructure:"roll_deg"`
	HeightMm float64 `mapstructure:"height_mm"`

	// Reset re-anchors the adjustment session on the live posture before
	// the rest of the command is applied.
	Reset bool `mapstructure:"reset"`
}

// attitude converts the degree-valued command into the radian attitude the
// posture controller works in.
func (c AttitudeCommand) attitude() quadpose.Attitude {
	return quadpose.Attitude{
		Yaw:      rdkutils.DegToRad(c.YawDeg),
		Pitch:    rdkutils.DegToRad(c.PitchDeg),
		Roll:     rdkutils.DegToRad(c.RollDeg),
		HeightMm: c.HeightMm,
	}
}

// teleopStatus is the reply sent after each command frame.
type teleopStatus struct {
	OK          bool              `json:"ok"`
	Error       string            `json:"error,omitempty"`
	Posture     *quadpose.Posture `json:"posture,omitempty"`
	Adjustments int               `json:"adjustments"`
}

// controlLock admits one teleoperation session at a time.
type controlLock struct {
	lck   sync.Mutex
	inuse bool
}

func (cl *controlLock) acquire() error {
	cl.lck.Lock()
	defer cl.lck.Unlock()
	if cl.inuse {
		return errors.New("controls already held by another session")
	}
	cl.inuse = true
	return nil
}

func (cl *controlLock) release() {
	cl.lck.Lock()
	defer cl.lck.Unlock()
	cl.inuse = false
}

// TeleopServer drives the robot's attitude over a websocket, one connected
// operator at a time. A second /control connection is refused with 409
// until the first disconnects.
type TeleopServer struct {
	r        *Robot
	upgrader websocket.Upgrader
	controls controlLock

	// mu serializes robot access between the control loop and the status
	// endpoint.
	mu sync.Mutex
}

// NewTeleopServer wraps a robot for websocket teleoperation.
func NewTeleopServer(r *Robot) *TeleopServer {
	return &TeleopServer{
		r: r,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// ListenAndServe blocks serving the teleop endpoints until ctx is cancelled.
func (s *TeleopServer) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/control", s.handleControl)
	mux.HandleFunc("/status.json", s.handleStatus)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		// Close rather than Shutdown so a held control socket does not
		// keep the server alive.
		srv.Close() //nolint:errcheck
	}()

	s.r.logger.Infof("Teleop listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *TeleopServer) handleControl(w http.ResponseWriter, req *http.Request) {
	w.Header().Add("Cache-Control", "no-cache")
	if err := s.controls.acquire(); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	defer s.controls.release()

	ws, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		s.r.logger.Errorf("Error upgrading websocket: %q", err.Error())
		return
	}
	defer ws.Close() //nolint:errcheck
	s.r.logger.Info("Teleop session opened")

	ctx := req.Context()
	for {
		var raw map[string]interface{}
		if err := ws.ReadJSON(&raw); err != nil {
			s.r.logger.Infof("Teleop session closed: %v", err)
			return
		}

		status := s.apply(ctx, raw)
		if status.Error != "" {
			s.r.logger.Warnf("Teleop command rejected: %s", status.Error)
		}
		if err := ws.WriteJSON(status); err != nil {
			s.r.logger.Warnf("Error writing to control socket: %q", err.Error())
			return
		}
	}
}

// apply decodes and executes one command frame under the robot lock.
func (s *TeleopServer) apply(ctx context.Context, raw map[string]interface{}) teleopStatus {
	var cmd AttitudeCommand
	if err := mapstructure.Decode(raw, &cmd); err != nil {
		return teleopStatus{Error: fmt.Sprintf("decode command: %v", err)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if cmd.Reset {
		if err := s.r.captureReference(ctx); err != nil {
			return teleopStatus{Error: err.Error(), Adjustments: s.r.state.AdjustmentsApplied}
		}
	}

	if err := SetAttitude(ctx, s.r, cmd.attitude()); err != nil {
		return teleopStatus{Error: err.Error(), Adjustments: s.r.state.AdjustmentsApplied}
	}

	committed, _ := s.r.controller.Committed()
	return teleopStatus{OK: true, Posture: &committed, Adjustments: s.r.state.AdjustmentsApplied}
}

// handleStatus reports the session's attitude as a protobuf-JSON body pose,
// so UIs can reuse the same pose schema the robot API speaks.
func (s *TeleopServer) handleStatus(w http.ResponseWriter, req *http.Request) {
	s.mu.Lock()
	att := s.r.state.LastAttitude
	adjustments := s.r.state.AdjustmentsApplied
	s.mu.Unlock()

	pose := spatialmath.NewPose(
		r3.Vector{Z: att.HeightMm},
		&spatialmath.EulerAngles{Roll: att.Roll, Pitch: att.Pitch, Yaw: att.Yaw},
	)
	poseJSON, err := protojson.Marshal(spatialmath.PoseToProtobuf(pose))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	json.NewEncoder(w).Encode(struct { //nolint:errcheck
		Adjustments int             `json:"adjustments"`
		BodyPose    json.RawMessage `json:"body_pose"`
	}{
		Adjustments: adjustments,
		BodyPose:    poseJSON,
	})
}

package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeIgnoresMessagesAndNumericStrings(t *testing.T) {
	assert.True(t, shapesEqual([]byte(`{"message":"student added"}`), []byte(`{"message":"Estudiante agregado correctamente"}`)))
	assert.True(t, shapesEqual(
		[]byte(`[{"id":1,"approved":0,"subject_name":"Math"}]`),
		[]byte(`[{"id":"1","approved":"0","subject_name":"Math"}]`),
	))
	assert.False(t, shapesEqual([]byte(`{"message":"ok"}`), []byte(`{"error":"ok"}`)))
	assert.False(t, shapesEqual([]byte(`[]`), []byte(`null`)))
}

func TestBodiesEqualNormalizesNumbers(t *testing.T) {
	assert.True(t, bodiesEqual([]byte(`{"id":1,"age":20.0}`), []byte(`{"id":"1","age":"20"}`)))
	assert.False(t, bodiesEqual([]byte(`{"id":1}`), []byte(`{"id":2}`)))
}

func TestCompareTargetSendsBodyToBoth(t *testing.T) {
	var bodies [][]byte
	handler := func(status int, reply string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			raw, _ := io.ReadAll(r.Body)
			bodies = append(bodies, raw)
			w.WriteHeader(status)
			_, _ = w.Write([]byte(reply))
		}
	}
	goSrv := httptest.NewServer(handler(http.StatusBadRequest, `{"error":"incomplete enrollment data"}`))
	defer goSrv.Close()
	legacySrv := httptest.NewServer(handler(http.StatusBadRequest, `{"error":"Datos incompletos"}`))
	defer legacySrv.Close()

	tgt := target{Method: "put", Path: "/server.php?module=students_subjects", Body: []byte(`{"id":1}`), Critical: true}
	comps, breaking, optional := compareAll(http.DefaultClient, goSrv.URL, legacySrv.URL, []target{tgt})

	require.Len(t, comps, 1)
	assert.NoError(t, comps[0].Error)
	assert.True(t, comps[0].StatusMatch)
	assert.True(t, comps[0].BodyMatch)
	assert.Zero(t, breaking)
	assert.Zero(t, optional)
	assert.Equal(t, [][]byte{[]byte(`{"id":1}`), []byte(`{"id":1}`)}, bodies)

	buf := &bytes.Buffer{}
	printReport(buf, comps)
	assert.Contains(t, buf.String(), "[OK] put /server.php?module=students_subjects")
}

func TestCompareTargetStatusDiffIsBreaking(t *testing.T) {
	goSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer goSrv.Close()
	legacySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"x"}`))
	}))
	defer legacySrv.Close()

	_, breaking, _ := compareAll(http.DefaultClient, goSrv.URL, legacySrv.URL, []target{{Path: "/x", Critical: true}})
	assert.Equal(t, 1, breaking)
}

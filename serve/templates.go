package serve

import (
	"html/template"
	"sort"
)

const (
	FormTemplateName    = "form"
	SuccessTemplateName = "post_success"
	FailureTemplateName = "post_failure"
)

// Templates returns the page templates by name. They are compiled in so the
// binary has no runtime file dependencies besides the backgrounds.
func Templates() map[string]string {
	return map[string]string{
		FormTemplateName:    FormTemplate,
		SuccessTemplateName: SuccessTemplate,
		FailureTemplateName: FailureTemplate,
	}
}

// ParseTemplates parses every template in m into one set.
func ParseTemplates(m map[string]string) (*template.Template, error) {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	root := template.New("")
	for _, n := range names {
		if _, err := root.New(n).Parse(m[n]); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// FormTemplate is the recognition form. The script posts every change to the
// view's change handlers and shows the submit result with alert().
const FormTemplate = `<!doctype html>
<html>

<head>
    <meta charset="utf-8">
    <title>{{.Title}}: Recognition</title>
    <style>
        body { margin: 0; background: #f9fafb; font-family: sans-serif; }
        .page { padding: 32px 0; }
        #capture-area { max-width: 850px; margin: 0 auto; padding: 32px; background-color: #fff;
            border-radius: 8px; box-shadow: 0 10px 15px rgba(0,0,0,.1); background-size: cover; background-position: center; }
        .header { display: flex; justify-content: space-between; align-items: center; margin-bottom: 32px; }
        h1 { font-size: 36px; font-weight: bold; color: #E31837; margin: 0; }
        label.caption { display: block; font-weight: bold; color: #374151; margin-bottom: 8px; }
        input[type=text], input[type=date], textarea { width: 100%; box-sizing: border-box; padding: 8px;
            border: 2px solid #E31837; border-radius: 4px; }
        textarea { height: 128px; }
        .row { display: flex; justify-content: space-between; gap: 16px; margin-bottom: 32px; }
        .check { display: flex; align-items: center; gap: 8px; font-weight: bold; font-size: 14px; white-space: nowrap; }
        .check input { width: 20px; height: 20px; }
        .footer { display: grid; grid-template-columns: 1fr 1fr; gap: 32px; margin: 24px 0; }
        button { width: 100%; background: #E31837; color: #fff; padding: 12px 24px; border: 0;
            border-radius: 8px; font-weight: bold; cursor: pointer; }
        button:hover { background: #c41430; }
    </style>
</head>

<body>
<div class="page">
<div id="capture-area" style="background-image: url('{{.BackgroundURL}}')">
    <div class="header">
        <h1>{{.Title}}</h1>
        <div style="max-width: 300px">
            <label class="caption" for="recipientName">CHEERS TO YOU,</label>
            <input type="text" id="recipientName" name="recipientName" form="recognition" value="{{.State.RecipientName}}" required>
        </div>
    </div>

    <form id="recognition" method="POST" action="/views/{{.ViewID}}/submit">
        <input type="hidden" name="full" value="1">
        <div class="row">
        {{range .TopRow}}
            <label class="check"><input type="checkbox" name="{{.Key}}" {{if .Checked}}checked{{end}}>{{.Label}}</label>
        {{end}}
        </div>

        <label class="caption" for="message">Recognition Message:</label>
        <textarea id="message" name="message" required>{{.State.Message}}</textarea>

        <div class="row" style="margin-top: 24px">
        {{range .BottomRow}}
            <label class="check"><input type="checkbox" name="{{.Key}}" {{if .Checked}}checked{{end}}>{{.Label}}</label>
        {{end}}
        </div>

        <div class="footer">
            <div>
                <label class="caption" for="signature">WITH #CHILISLOVE,</label>
                <input type="text" id="signature" name="signature" value="{{.State.Signature}}" required>
            </div>
            <div>
                <label class="caption" for="date">DATE</label>
                <input type="date" id="date" name="date" value="{{.State.Date}}" required>
            </div>
        </div>

        <button type="submit">Submit Recognition</button>
    </form>
</div>
</div>

<script>
(function () {
    var base = "/views/{{.ViewID}}";
    function post(path, params) {
        return fetch(base + path, {
            method: "POST",
            headers: {"Content-Type": "application/x-www-form-urlencoded"},
            body: new URLSearchParams(params)
        });
    }
    document.querySelectorAll("input[type=text], input[type=date], textarea").forEach(function (el) {
        el.addEventListener("change", function () { post("/fields/" + el.name, {value: el.value}); });
    });
    document.querySelectorAll("input[type=checkbox]").forEach(function (el) {
        el.addEventListener("change", function () { post("/checkboxes/" + el.name, {checked: el.checked}); });
    });
    document.getElementById("recognition").addEventListener("submit", function (e) {
        e.preventDefault();
        var data = new URLSearchParams(new FormData(e.target));
        data.set("recipientName", document.getElementById("recipientName").value);
        fetch(base + "/submit", {method: "POST", headers: {"Accept": "application/json"}, body: data})
            .then(function (resp) { return resp.status === 204 ? null : resp.json(); })
            .then(function (r) {
                if (!r) { return; }
                var msg = r.message;
                if (r.reasons && r.reasons.length) { msg += ":\n" + r.reasons.join("\n"); }
                alert(msg);
            })
            .catch(function (err) { console.error("Submission error:", err); alert("Error submitting form: " + err.message); });
    });
})();
</script>
</body>

</html>
`

// SuccessTemplate is rendered after an accepted upload when the form was
// posted without script.
const SuccessTemplate = `<!doctype html>
<html>

<head>
    <title>Recognition: Success!</title>
</head>

<body>
    <h2>{{.Message}}</h2>

    <p><a href="/">Recognize someone else</a></p>
</body>

</html>
`

// FailureTemplate is rendered when a submission was rejected or failed.
const FailureTemplate = `<!doctype html>
<html>

<head>
    <title>Recognition: Oops!</title>
</head>

<body>
    <h2>{{.Message}}</h2>

    {{if .Reasons}}
    <p>Your form had the following problem(s):
    <ul>
    {{range .Reasons}}
        <li><strong>{{.}}</strong></li>
    {{end}}
    </ul>
    {{end}}

    <p>Please hit "back" and submit again.
</body>

</html>
`
